package service

import (
	"context"
	"fmt"
	"html"
	"quote-storefront/internal/client"
	"strings"
	"time"
)

// Visitor is what the storefront knows about a browser before any sign-in.
type Visitor struct {
	ID        string
	IP        string
	UserAgent string
	Language  string
	Referer   string
	Path      string
}

// TrackingService reports visitors to the chat channel. A successful report is
// the precondition the location gate waits for.
type TrackingService interface {
	TrackUserInfo(ctx context.Context, visitor Visitor) error
}

type trackingServiceImpl struct {
	geoClient      client.GeoClient
	telegramClient client.TelegramClient
	now            func() time.Time
}

func NewTrackingService(geoClient client.GeoClient, telegramClient client.TelegramClient) TrackingService {
	return &trackingServiceImpl{
		geoClient:      geoClient,
		telegramClient: telegramClient,
		now:            time.Now,
	}
}

func (s *trackingServiceImpl) TrackUserInfo(ctx context.Context, visitor Visitor) error {
	loc, err := s.geoClient.Lookup(ctx, visitor.IP)
	if err != nil {
		return fmt.Errorf("lookup visitor location: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🌍 <b>New Visitor</b>\n")
	fmt.Fprintf(&b, "⏰ <b>Time:</b> %s\n\n", s.now().Format(time.RFC1123))
	fmt.Fprintf(&b, "🆔 <b>Visitor:</b> %s\n", esc(visitor.ID))
	fmt.Fprintf(&b, "🌐 <b>IP:</b> %s\n", esc(visitor.IP))
	fmt.Fprintf(&b, "📍 <b>Location:</b> %s\n", esc(joinNonEmpty(", ", loc.City, loc.Region, loc.Country)))
	fmt.Fprintf(&b, "🗺 <b>Coordinates:</b> %.4f, %.4f\n", loc.Latitude, loc.Longitude)
	if loc.Timezone != "" {
		fmt.Fprintf(&b, "🕒 <b>Timezone:</b> %s\n", esc(loc.Timezone))
	}
	fmt.Fprintf(&b, "🏢 <b>ISP:</b> %s\n\n", esc(orNA(loc.Org)))
	fmt.Fprintf(&b, "🧭 <b>Browser:</b> %s\n", esc(orNA(visitor.UserAgent)))
	fmt.Fprintf(&b, "🗣 <b>Language:</b> %s\n", esc(orNA(visitor.Language)))
	fmt.Fprintf(&b, "📄 <b>Page:</b> %s\n", esc(orNA(visitor.Path)))
	if visitor.Referer != "" {
		fmt.Fprintf(&b, "↩️ <b>Referrer:</b> %s\n", esc(visitor.Referer))
	}

	if err := s.telegramClient.SendMessage(ctx, b.String()); err != nil {
		return fmt.Errorf("send visitor report: %w", err)
	}
	return nil
}

func esc(s string) string {
	return html.EscapeString(s)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return "N/A"
	}
	return strings.Join(kept, sep)
}
