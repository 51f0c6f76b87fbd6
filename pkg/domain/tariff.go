package domain

// Tariff is a subscription plan name.
type Tariff string

const (
	TariffBasic     Tariff = "Basic"
	TariffExtended  Tariff = "Extended"
	TariffUnlimited Tariff = "Unlimited"
)

// TariffPlan describes a plan offered on the settings screen.
type TariffPlan struct {
	Name    Tariff
	Price   string
	Desc    string
	Details string
}

// TariffPlans are the plans in display order.
var TariffPlans = []TariffPlan{
	{Name: TariffBasic, Price: "0 ₽ / mo", Desc: "Basic plan", Details: "Core features, at most one active project."},
	{Name: TariffExtended, Price: "250 ₽ / mo", Desc: "Extended plan", Details: "Core features, up to five active projects, analytics."},
	{Name: TariffUnlimited, Price: "450 ₽ / mo", Desc: "Unlimited plan", Details: "All features, unlimited active projects, analytics, priority support."},
}

// ValidTariff returns true if t names a known plan.
func ValidTariff(t Tariff) bool {
	for _, p := range TariffPlans {
		if p.Name == t {
			return true
		}
	}
	return false
}

// ArchiveLimit returns how many archive entries a plan may show. A nil tariff
// counts as Basic. A negative result means no limit.
func ArchiveLimit(t *Tariff) int {
	if t == nil {
		return 1
	}
	switch *t {
	case TariffExtended:
		return 5
	case TariffUnlimited:
		return -1
	default:
		return 1
	}
}

// Subscription is the designer's paid plan and its remaining days.
type Subscription struct {
	Plan     Tariff `json:"plan"`
	DaysLeft int    `json:"daysLeft"`
}

// DefaultSubscription is the trial every new designer starts with.
var DefaultSubscription = Subscription{Plan: TariffBasic, DaysLeft: 15}
