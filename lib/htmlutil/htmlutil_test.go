package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	cases := map[string]string{
		"\n\t  Main Hall \n":       "Main Hall",
		"1:\nTraining":             "1: Training",
		"price  1 200":   "price 1 200",
		"already clean":            "already clean",
		"":                         "",
	}
	for in, want := range cases {
		require.Equal(t, want, CleanText(in))
	}
}

func TestGetText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<td><a href="/x">858: <b>Evening</b> Drill</a></td>`))
	require.NoError(t, err)

	node := doc.Find("a").Nodes[0]
	require.Equal(t, "858: Evening Drill", GetText(node))
}
