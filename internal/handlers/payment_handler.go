package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/havenstead/tenant-assist-be/internal/repositories"
)

type PaymentHandler struct {
	leases        repositories.LeaseRepo
	portalBaseURL string
}

func NewPaymentHandler(leases repositories.LeaseRepo, portalBaseURL string) *PaymentHandler {
	return &PaymentHandler{leases: leases, portalBaseURL: portalBaseURL}
}

// GetPaymentQR godoc
// @Summary Get a payment QR code
// @Description Returns a PNG QR code linking to the tenant's rent payment page in the portal.
// @Tags Payments
// @Produce png
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/payments/qr [get]
func (h *PaymentHandler) GetPaymentQR(c *fiber.Ctx) error {
	tenantID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid user identity",
		})
	}

	lease, err := h.leases.ActiveLease(c.UserContext(), tenantID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to look up lease",
		})
	}
	if lease == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no active lease on file",
		})
	}

	payURL := fmt.Sprintf("%s/payments/new?lease_id=%s&amount=%.2f", h.portalBaseURL, lease.ID, lease.MonthlyRent)
	png, err := qrcode.Encode(payURL, qrcode.Medium, 256)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to generate QR code",
		})
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
