package dialogue

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var propertyTriggers = []string{
	"property", "apartment", "house", "building", "amenity", "facility",
	"feature", "gym", "pool", "laundry", "parking", "pet", "rule", "policy",
	"smoking", "guest",
}

const propertyApology = "I'm sorry, I couldn't find property information for your account. " +
	"Please contact your landlord or property manager directly."

// amenityVocab maps amenity categories to the phrases scanned for in the
// property's free-text description. This is a heuristic over prose, not
// structured data.
var amenityVocab = []struct {
	name     string
	keywords []string
}{
	{"gym", []string{"gym", "fitness"}},
	{"pool", []string{"pool", "swimming"}},
	{"laundry", []string{"laundry", "washer", "dryer"}},
	{"parking", []string{"parking", "garage", "carport"}},
	{"pets", []string{"pet friendly", "pet-friendly", "pets allowed", "pets welcome"}},
}

// PropertyHandler answers questions about the building, unit and amenities.
type PropertyHandler struct {
	properties PropertySource
}

func NewPropertyHandler(properties PropertySource) *PropertyHandler {
	return &PropertyHandler{properties: properties}
}

// Handle returns a response when the utterance contains a property trigger
// keyword, or ok=false otherwise.
func (h *PropertyHandler) Handle(ctx context.Context, utterance string, tenantID uuid.UUID) (string, bool) {
	if !containsAny(utterance, propertyTriggers) {
		return "", false
	}

	prop, err := h.properties.PropertyForTenant(ctx, tenantID)
	if err != nil || prop == nil {
		return propertyApology, true
	}

	amenities := inferAmenities(prop.Description)
	norm := strings.ToLower(utterance)

	switch {
	case strings.Contains(norm, "gym") || strings.Contains(norm, "fitness"):
		if amenities["gym"] {
			return "Yes, the building has a fitness center available to residents.", true
		}
		return "I don't see a gym listed for this property, sorry.", true
	case strings.Contains(norm, "pool") || strings.Contains(norm, "swim"):
		if amenities["pool"] {
			return "Yes, there's a pool on the property. Check the posted hours at the pool entrance.", true
		}
		return "I don't see a pool listed for this property, sorry.", true
	case strings.Contains(norm, "laundry") || strings.Contains(norm, "washer"):
		if amenities["laundry"] {
			return "Yes, laundry facilities are available at the property.", true
		}
		return "I don't see laundry facilities listed for this property. There may be a laundromat nearby.", true
	case strings.Contains(norm, "parking") || strings.Contains(norm, "garage"):
		if amenities["parking"] {
			return "Yes, the property has parking available. Ask your landlord about assigned spots or permits.", true
		}
		return "I don't see dedicated parking listed for this property. Street parking rules depend on your city.", true
	case strings.Contains(norm, "pet") || strings.Contains(norm, "dog") || strings.Contains(norm, "cat"):
		if amenities["pets"] {
			return "Good news — this property is listed as pet friendly. Make sure any pet is registered on your lease.", true
		}
		return "I don't see a pet-friendly note for this property. Please check your lease or ask your landlord before bringing a pet home.", true
	case strings.Contains(norm, "rule") || strings.Contains(norm, "policy") || strings.Contains(norm, "smoking") || strings.Contains(norm, "guest"):
		return "House rules such as smoking, guests and quiet hours are listed in your lease agreement. The most common ones: no smoking inside units, guests staying longer than 14 days need landlord approval, and quiet hours run 10pm-7am.", true
	default:
		return h.summaryResponse(prop, amenities), true
	}
}

func (h *PropertyHandler) summaryResponse(prop *PropertyInfo, amenities map[string]bool) string {
	var names []string
	for _, entry := range amenityVocab {
		if amenities[entry.name] {
			names = append(names, entry.name)
		}
	}

	resp := fmt.Sprintf("You're in unit %s at %s (%d bed, %d bath).",
		prop.UnitNumber, prop.Address, prop.Bedrooms, prop.Bathrooms)
	if len(names) > 0 {
		resp += fmt.Sprintf(" Listed amenities include: %s.", strings.Join(names, ", "))
	}
	return resp
}

// inferAmenities scans the property description for amenity phrases.
func inferAmenities(description string) map[string]bool {
	norm := strings.ToLower(description)
	found := make(map[string]bool, len(amenityVocab))
	for _, entry := range amenityVocab {
		for _, kw := range entry.keywords {
			if strings.Contains(norm, kw) {
				found[entry.name] = true
				break
			}
		}
	}
	return found
}
