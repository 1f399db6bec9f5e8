package setup

import (
	"math"
	"slices"

	"github.com/umputun/admax/app/api"
)

// Campaign is one campaign type of the reviewed account structure. Budget is monthly, in dollars.
type Campaign struct {
	Type               api.CampaignType `json:"type"`
	Budget             int              `json:"budget"`
	Percent            int              `json:"percent"`
	CampaignIDs        []string         `json:"campaign_ids"`
	LinkedCampaignName string           `json:"linked_campaign_name,omitempty"`
}

// CampaignLink links a campaign type to an existing platform campaign
type CampaignLink struct {
	CampaignID   string
	CampaignName string
}

// campaignTypes in display order
var campaignTypes = []api.CampaignType{api.CampaignScale, api.CampaignRetargeting, api.CampaignTesting}

// CampaignsFromSettings converts stored budget settings to campaigns. Nil settings use the default split,
// non-positive total uses the default monthly budget. names maps linked campaign ids to their names.
func CampaignsFromSettings(settings *api.BudgetSettings, total float64, names map[string]string) []Campaign {
	bs := api.DefaultBudgetSettings()
	if settings != nil {
		bs = *settings
	}
	if total <= 0 {
		total = api.DefaultMonthlyBudget
	}

	res := make([]Campaign, 0, len(campaignTypes))
	for _, ct := range campaignTypes {
		cb := bs.For(ct)
		pct := float64(cb.Pct) / 100
		c := Campaign{
			Type:        ct,
			Budget:      round(total * pct / 100),
			Percent:     round(pct),
			CampaignIDs: slices.Clone(cb.CampaignIDs),
		}
		if c.CampaignIDs == nil {
			c.CampaignIDs = []string{}
		}
		if len(c.CampaignIDs) > 0 {
			c.LinkedCampaignName = names[c.CampaignIDs[0]]
		}
		res = append(res, c)
	}
	return res
}

// SettingsFromCampaigns converts campaigns to budget settings. Retargeting is not part of the reviewed
// structure and is always stored empty.
func SettingsFromCampaigns(campaigns []Campaign) api.BudgetSettings {
	res := api.BudgetSettings{
		Scaling:     api.CampaignBudget{CampaignIDs: []string{}},
		Retargeting: api.CampaignBudget{CampaignIDs: []string{}},
		Testing:     api.CampaignBudget{CampaignIDs: []string{}},
	}
	for _, c := range campaigns {
		cb := api.CampaignBudget{Pct: c.Percent * 100, CampaignIDs: slices.Clone(c.CampaignIDs)}
		if cb.CampaignIDs == nil {
			cb.CampaignIDs = []string{}
		}
		switch c.Type {
		case api.CampaignScale:
			res.Scaling = cb
		case api.CampaignTesting:
			res.Testing = cb
		}
	}
	return res
}

// TotalBudget sums budgets of visible campaigns, retargeting excluded
func TotalBudget(campaigns []Campaign) int {
	total := 0
	for _, c := range campaigns {
		if c.Type != api.CampaignRetargeting {
			total += c.Budget
		}
	}
	return total
}

// UpdateBudget sets budget of one campaign type and recomputes percents of all campaigns
func UpdateBudget(campaigns []Campaign, ct api.CampaignType, budget int) []Campaign {
	res := cloneCampaigns(campaigns)
	newTotal := 0
	for i := range res {
		if res[i].Type == ct {
			res[i].Budget = budget
		}
		newTotal += res[i].Budget
	}
	for i := range res {
		if newTotal == 0 {
			res[i].Percent = 0
			continue
		}
		res[i].Percent = round(float64(res[i].Budget) / float64(newTotal) * 100)
	}
	return res
}

// UpdatePercent sets percent of one campaign type and rebalances the other visible campaigns.
// The last visible campaign absorbs rounding so visible percents sum to 100. Retargeting is kept as is.
func UpdatePercent(campaigns []Campaign, ct api.CampaignType, percent int) []Campaign {
	res := cloneCampaigns(campaigns)
	target := slices.IndexFunc(res, func(c Campaign) bool { return c.Type == ct })
	if target < 0 {
		return res
	}

	totalBudget := 0
	for _, c := range res {
		totalBudget += c.Budget
	}
	var others []int // indexes of other visible campaigns
	otherOldPercent := 0
	for i, c := range res {
		if c.Type == api.CampaignRetargeting || c.Type == ct {
			continue
		}
		others = append(others, i)
		otherOldPercent += c.Percent
	}

	remaining := 100 - percent
	targetBudget := round(float64(totalBudget) * float64(percent) / 100)
	res[target].Percent, res[target].Budget = percent, targetBudget

	if len(others) == 1 {
		res[others[0]].Percent = remaining
		res[others[0]].Budget = totalBudget - targetBudget
		return res
	}

	accPercent, accBudget := percent, targetBudget
	for n, i := range others {
		if n == len(others)-1 {
			res[i].Percent = 100 - accPercent
			res[i].Budget = totalBudget - accBudget
			break
		}
		ratio := 1 / float64(len(others))
		if otherOldPercent > 0 {
			ratio = float64(res[i].Percent) / float64(otherOldPercent)
		}
		p := round(float64(remaining) * ratio)
		b := round(float64(totalBudget) * float64(p) / 100)
		res[i].Percent, res[i].Budget = p, b
		accPercent += p
		accBudget += b
	}
	return res
}

// UpdateTotal distributes a new visible total between visible campaigns by their percents.
// Percents are normalized when they are more than half a percent off 100. Non-positive totals are ignored.
func UpdateTotal(campaigns []Campaign, total int) []Campaign {
	res := cloneCampaigns(campaigns)
	if total <= 0 {
		return res
	}
	var visible []int
	visiblePercent := 0
	for i, c := range res {
		if c.Type == api.CampaignRetargeting {
			continue
		}
		visible = append(visible, i)
		visiblePercent += c.Percent
	}
	normalize := math.Abs(float64(visiblePercent-100)) > 0.5

	accBudget, accPercent := 0, 0
	for n, i := range visible {
		if n == len(visible)-1 {
			res[i].Budget = total - accBudget
			if normalize {
				res[i].Percent = 100 - accPercent
			}
			break
		}
		p := res[i].Percent
		if normalize && visiblePercent > 0 {
			p = round(float64(res[i].Percent) / float64(visiblePercent) * 100)
		}
		b := round(float64(total) * float64(p) / 100)
		accBudget += b
		accPercent += p
		res[i].Budget = b
		if normalize {
			res[i].Percent = p
		}
	}
	return res
}

// LinkCampaigns applies campaign links. A nil link unlinks the type, absent types are kept unchanged.
func LinkCampaigns(campaigns []Campaign, links map[api.CampaignType]*CampaignLink) []Campaign {
	res := cloneCampaigns(campaigns)
	for i := range res {
		link, ok := links[res[i].Type]
		switch {
		case !ok:
		case link == nil:
			res[i].CampaignIDs = []string{}
			res[i].LinkedCampaignName = ""
		default:
			res[i].CampaignIDs = []string{link.CampaignID}
			res[i].LinkedCampaignName = link.CampaignName
		}
	}
	return res
}

// campaignIDs collects all linked campaign ids of the settings
func campaignIDs(bs api.BudgetSettings) []string {
	var res []string
	for _, ct := range campaignTypes {
		res = append(res, bs.For(ct).CampaignIDs...)
	}
	return res
}

func cloneCampaigns(campaigns []Campaign) []Campaign {
	if campaigns == nil {
		return nil
	}
	res := make([]Campaign, len(campaigns))
	for i, c := range campaigns {
		c.CampaignIDs = slices.Clone(c.CampaignIDs)
		res[i] = c
	}
	return res
}

// round rounds half up like the service does for budget shares
func round(v float64) int { return int(math.Floor(v + 0.5)) }
