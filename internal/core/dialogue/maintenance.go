package dialogue

import "strings"

// Urgency levels for a maintenance diagnosis.
const (
	UrgencyHigh = "high"
	UrgencyLow  = "low"
)

// OfferMaintenanceRequest is the canned phrase the diagnosis response ends
// with; the yes/no handler looks for it in the previous bot message to know
// what a "yes" confirms.
const OfferMaintenanceRequest = "submit a maintenance request"

const emergencyInstruction = "This sounds like it could be an emergency. Please call the emergency maintenance line listed in your tenant portal right away. If you smell gas, leave the unit immediately and call your gas provider from outside."

// issueCategories maps maintenance categories to their trigger vocabularies.
// Slice order fixes both detection order and which category's troubleshooting
// steps are rendered when several match.
var issueCategories = []struct {
	category string
	keywords []string
}{
	{"plumbing", []string{"toilet", "sink", "faucet", "drain", "pipe", "water", "leak", "clog"}},
	{"electrical", []string{"outlet", "light", "switch", "power", "electric", "breaker", "wiring"}},
	{"hvac", []string{"heat", "heating", "air conditioning", "furnace", "thermostat", "cooling", " ac "}},
	{"appliance", []string{"fridge", "refrigerator", "stove", "oven", "dishwasher", "washer", "dryer", "microwave"}},
	{"structural", []string{"wall", "ceiling", "floor", "door", "window", "roof", "crack"}},
	{"pest", []string{"pest", "mice", "mouse", "rat", "roach", "bug", "ant ", "insect"}},
}

var emergencyKeywords = []string{
	"flood", "fire", "smoke", "gas", "leak", "emergency", "dangerous", "safety",
}

// troubleshootingSteps per category, shown only for low-urgency issues.
var troubleshootingSteps = map[string][]string{
	"plumbing": {
		"Turn off the water valve behind the fixture if water is running",
		"Try a plunger for clogged toilets or drains",
		"Put a bucket under any drip to limit damage",
	},
	"electrical": {
		"Check whether the breaker for that room has tripped",
		"Unplug devices on the affected circuit",
		"Do not touch outlets or wiring that spark or smell burnt",
	},
	"hvac": {
		"Check the thermostat batteries and mode setting",
		"Replace or clean the air filter if it looks clogged",
		"Make sure vents aren't blocked by furniture",
	},
	"appliance": {
		"Confirm the appliance is plugged in and the outlet works",
		"Check the breaker for the kitchen or laundry circuit",
		"Note the model number for the repair visit",
	},
	"structural": {
		"Keep clear of any sagging ceiling or loose fixture",
		"Photograph the damage for the repair record",
	},
	"pest": {
		"Seal any food in closed containers",
		"Note where and when you see activity to help the exterminator",
	},
}

// Diagnosis is the result of scanning an utterance for maintenance issues.
type Diagnosis struct {
	Issues  []string
	Urgency string
}

// DiagnoseMaintenance scans the utterance for issue-category keywords and,
// separately, emergency keywords. Returns ok=false when no category matched.
// Pure function.
func DiagnoseMaintenance(utterance string) (*Diagnosis, bool) {
	norm := strings.ToLower(utterance)

	var issues []string
	for _, entry := range issueCategories {
		for _, kw := range entry.keywords {
			if strings.Contains(norm, kw) {
				issues = append(issues, entry.category)
				break
			}
		}
	}
	if len(issues) == 0 {
		return nil, false
	}

	urgency := UrgencyLow
	for _, kw := range emergencyKeywords {
		if strings.Contains(norm, kw) {
			urgency = UrgencyHigh
			break
		}
	}

	return &Diagnosis{Issues: issues, Urgency: urgency}, true
}

// RenderDiagnosis turns a diagnosis into the bot response. High urgency gets
// the emergency instruction instead of steps. For low urgency, only the
// first detected category's steps are rendered even when several matched —
// this mirrors the web app's branching and is intentional.
func RenderDiagnosis(d *Diagnosis) string {
	if d.Urgency == UrgencyHigh {
		return emergencyInstruction + " Would you also like me to " + OfferMaintenanceRequest + " so your landlord is notified?"
	}

	var b strings.Builder
	b.WriteString("It sounds like you have a " + d.Issues[0] + " issue. A few things to try first:\n")
	for _, step := range troubleshootingSteps[d.Issues[0]] {
		b.WriteString("• " + step + "\n")
	}
	b.WriteString("If that doesn't help, would you like me to " + OfferMaintenanceRequest + "?")
	return b.String()
}
