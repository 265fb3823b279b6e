package notify

import (
	"fmt"
	"strings"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/dulcecodigo/storefront/internal/domain/order"
)

// statusMessages are the customer-facing descriptions for each fulfillment
// stage.
var statusMessages = map[order.Status]string{
	order.StatusPending:   "Tu pedido está pendiente de confirmación",
	order.StatusConfirmed: "Tu pedido ha sido confirmado y está en preparación",
	order.StatusPreparing: "Estamos preparando tu pedido con mucho cariño",
	order.StatusReady:     "Tu pedido está listo para entrega",
	order.StatusDelivered: "¡Tu pedido ha sido entregado! Esperamos que disfrutes nuestras galletas",
	order.StatusCancelled: "Tu pedido ha sido cancelado",
}

// lineItem is the subset of an order's serialized cart needed for email
// content.
type lineItem struct {
	Name     string
	Price    decimal.Decimal
	Quantity int64
}

// parseItems decodes the opaque items blob leniently: unknown fields are
// skipped and any decode failure yields no line items rather than an error,
// since the blob's internal structure is owned by the storefront client.
func parseItems(raw []byte) []lineItem {
	var items []lineItem
	d := jx.DecodeBytes(raw)
	err := d.Arr(func(d *jx.Decoder) error {
		var it lineItem
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			switch key {
			case "name":
				s, err := d.Str()
				if err != nil {
					return err
				}
				it.Name = s
			case "price":
				raw, err := d.Raw()
				if err != nil {
					return err
				}
				p, err := decimal.NewFromString(strings.Trim(raw.String(), `"`))
				if err != nil {
					return err
				}
				it.Price = p
			case "quantity":
				q, err := d.Int64()
				if err != nil {
					return err
				}
				it.Quantity = q
			default:
				return d.Skip()
			}
			return nil
		}); err != nil {
			return err
		}
		items = append(items, it)
		return nil
	})
	if err != nil {
		return nil
	}
	return items
}

// confirmationSubject and statusSubject build the email subject lines.
func confirmationSubject(o *order.Order) string {
	return fmt.Sprintf("Confirmación de Pedido #%d - Dulce Codigo", o.ID)
}

func statusSubject(o *order.Order) string {
	return fmt.Sprintf("Actualización de Pedido #%d - Dulce Codigo", o.ID)
}

// confirmationBody renders the plain-text order confirmation.
func confirmationBody(o *order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Confirmación de Pedido #%d\n\n", o.ID)
	fmt.Fprintf(&b, "Hola %s,\n\n", o.CustomerName)
	b.WriteString("Gracias por tu pedido en Dulce Codigo.\n\n")

	if items := parseItems(o.Items); len(items) > 0 {
		b.WriteString("Detalles del pedido:\n")
		for _, it := range items {
			lineTotal := it.Price.Mul(decimal.NewFromInt(it.Quantity))
			fmt.Fprintf(&b, "- %s x%d - $%s\n", it.Name, it.Quantity, lineTotal.StringFixed(2))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Total: $%s\n", o.Total.StringFixed(2))
	fmt.Fprintf(&b, "Dirección: %s\n", o.Address)
	fmt.Fprintf(&b, "Puntos ganados: %d\n\n", o.PointsEarned)
	b.WriteString("¡Nos pondremos en contacto contigo pronto!\n\nDulce Codigo\n")
	return b.String()
}

// statusBody renders the plain-text status update.
func statusBody(o *order.Order) string {
	msg, ok := statusMessages[o.Status]
	if !ok {
		msg = string(o.Status)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Actualización de Pedido #%d\n\n", o.ID)
	fmt.Fprintf(&b, "Hola %s,\n\n", o.CustomerName)
	fmt.Fprintf(&b, "Estado actual: %s\n", msg)
	fmt.Fprintf(&b, "Total del pedido: $%s\n\n", o.Total.StringFixed(2))
	if o.Status == order.StatusCancelled {
		b.WriteString("Lamentamos cualquier inconveniente. Si tienes alguna pregunta, no dudes en contactarnos.\n")
	} else {
		b.WriteString("Te mantendremos informado sobre cualquier cambio adicional en tu pedido.\n")
	}
	b.WriteString("\nDulce Codigo\n")
	return b.String()
}
