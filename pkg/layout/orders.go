package layout

import (
	"github.com/usestring/artifact-mcp/pkg/payload"
)

// orderManager lays out an order awaiting approval. The trailing text
// block carries OrderApprovalMarker in place of the approve/reject
// controls.
func (g *Generator) orderManager(b *builder, data any) {
	details, ok := payload.MapAt(data, "order_details")
	if !ok {
		details, _ = data.(map[string]any)
	}

	b.add("order-summary", &MetricsGridProps{
		Metrics: NewMetrics().
			Set("Quantity", g.format.Integer(payload.FloatOr(details, 0, "quantity"))).
			Set("Estimated Cost", g.format.Currency(payload.FloatOr(details, 0, "estimated_cost"))).
			Set("Vendor", vendorName(details)).
			Set("Status", payload.StringOr(details, notAvailable, "status")),
		Title:   "Order Summary",
		Variant: VariantWarning,
		Columns: 4,
	}, WidthFull)

	if plan := payload.StringOr(data, "", "plan"); plan != "" {
		b.add("order-plan", &TextBlockProps{Title: "Order Plan", Content: plan}, WidthFull)
	}

	b.add("approval-required", &AlertProps{
		Type:    AlertWarning,
		Title:   "Approval Required",
		Message: "Review the order details and approve or reject this purchase order.",
	}, WidthFull)

	b.add("order-actions", &TextBlockProps{Content: OrderApprovalMarker}, WidthFull)
}

// vendorName accepts a vendor string or an object with a name.
func vendorName(details map[string]any) string {
	if name, ok := payload.StringAt(details, "vendor"); ok && name != "" {
		return name
	}
	return payload.StringOr(details, notAvailable, "vendor", "name")
}

// notifier lays out a sent notification: delivery metrics, the message
// and a success alert.
func (g *Generator) notifier(b *builder, data any) {
	channel := stripQuotes(payload.StringOr(data, notAvailable, "channel"))
	if channel == "" {
		channel = notAvailable
	}
	kind := stripQuotes(payload.StringOr(data, notAvailable, "notification_type"))
	if kind == "" {
		kind = notAvailable
	}

	sentAt := notAvailable
	if raw, ok := payload.Get(data, "sent_at"); ok && raw != nil {
		if s, isString := raw.(string); isString {
			raw = stripQuotes(s)
		}
		sentAt = g.format.DateTime(raw)
	}

	b.add("notification", &MetricsGridProps{
		Metrics: NewMetrics().
			Set("Channel", channel).
			Set("Type", kind).
			Set("Sent At", sentAt),
		Title:   "Notification",
		Columns: 3,
	}, WidthFull)

	if msg := stripQuotes(payload.StringOr(data, "", "message")); msg != "" {
		b.add("message", &TextBlockProps{Title: "Message", Content: msg}, WidthFull)
	}

	message := "The notification was delivered."
	if channel != notAvailable {
		message = "The notification was delivered via " + channel + "."
	}
	b.add("sent", &AlertProps{
		Type:    AlertSuccess,
		Title:   "Notification Sent",
		Message: message,
	}, WidthFull)
}
