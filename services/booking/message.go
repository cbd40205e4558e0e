package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"log/slog"
)

func formatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// formatMessage renders the manager notification. Reference lookups
// are best effort here: the request is already validated and stored,
// a thinner message is better than no message.
func (s *Service) formatMessage(ctx context.Context, booking Booking) string {
	switch booking.Source {
	case SourceSessionBooking:
		return s.formatSessionBooking(ctx, booking)
	case SourceMembershipPurchase:
		return s.formatMembershipPurchase(ctx, booking)
	default:
		return formatContactForm(booking)
	}
}

func (s *Service) formatSessionBooking(ctx context.Context, booking Booking) string {
	var b strings.Builder
	b.WriteString("🏸 *НОВАЯ ЗАПИСЬ НА ТРЕНИРОВКУ*\n\n")
	fmt.Fprintf(&b, "👤 *Имя:* %s\n", booking.Name)
	fmt.Fprintf(&b, "📞 *Телефон:* %s\n", NormalizePhone(booking.Phone))

	if booking.SessionID != nil {
		session, err := s.catalog.SessionByID(ctx, *booking.SessionID)
		if err != nil {
			slog.WarnContext(ctx, "session lookup for notification", "id", *booking.SessionID, "err", err)
		} else {
			b.WriteString("\n📅 *Тренировка:*\n")
			fmt.Fprintf(&b, "• Дата: %s\n", formatDateTime(session.Datetime))
			fmt.Fprintf(&b, "• Название: %s\n", session.Name)
			if location, err := s.catalog.LocationByID(ctx, session.LocationID); err == nil {
				fmt.Fprintf(&b, "• Локация: %s\n", location.Name)
			}
			fmt.Fprintf(&b, "• Свободно мест: %d из %d\n", session.AvailableSpots, session.MaxSpots)
		}
	}

	if booking.Message != "" {
		fmt.Fprintf(&b, "\n💬 *Сообщение:* %s\n", booking.Message)
	}
	fmt.Fprintf(&b, "\n⏰ *Время заявки:* %s", formatDateTime(booking.CreatedAt))
	return b.String()
}

func (s *Service) formatMembershipPurchase(ctx context.Context, booking Booking) string {
	var b strings.Builder
	b.WriteString("💳 *ЗАПРОС НА ПОКУПКУ АБОНЕМЕНТА*\n\n")
	fmt.Fprintf(&b, "👤 *Имя:* %s\n", booking.Name)
	fmt.Fprintf(&b, "📞 *Телефон:* %s\n", NormalizePhone(booking.Phone))

	if booking.MembershipID != nil {
		membership, err := s.catalog.MembershipByID(ctx, *booking.MembershipID)
		if err != nil {
			slog.WarnContext(ctx, "membership lookup for notification", "id", *booking.MembershipID, "err", err)
		} else {
			b.WriteString("\n🎫 *Абонемент:*\n")
			fmt.Fprintf(&b, "• Название: %s\n", membership.Name)
			fmt.Fprintf(&b, "• Тип: %s\n", membership.Type)
			fmt.Fprintf(&b, "• Цена: %d ₽\n", membership.Price)
			fmt.Fprintf(&b, "• Тренировок: %d\n", membership.SessionCount)
		}
	}

	if booking.Message != "" {
		fmt.Fprintf(&b, "\n💬 *Сообщение:* %s\n", booking.Message)
	}
	fmt.Fprintf(&b, "\n⏰ *Время заявки:* %s", formatDateTime(booking.CreatedAt))
	return b.String()
}

func formatContactForm(booking Booking) string {
	var b strings.Builder
	b.WriteString("📩 *НОВОЕ СООБЩЕНИЕ С САЙТА*\n\n")
	fmt.Fprintf(&b, "👤 *Имя:* %s\n", booking.Name)
	fmt.Fprintf(&b, "📞 *Телефон:* %s\n", NormalizePhone(booking.Phone))

	if booking.Message != "" {
		fmt.Fprintf(&b, "\n💬 *Сообщение:*\n%s\n", booking.Message)
	}
	fmt.Fprintf(&b, "\n⏰ *Время:* %s", formatDateTime(booking.CreatedAt))
	return b.String()
}
