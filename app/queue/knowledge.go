package queue

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/admax/app/api"
	"github.com/umputun/admax/app/dialog"
	"github.com/umputun/admax/app/query"
)

// KnowledgeParams are dependencies of the knowledge base
type KnowledgeParams struct {
	Backend    KnowledgeBackend
	SelectedID func() string // selected account id, empty in brand mode
	BrandID    func() string
	Dialogs    Dialogs
	Toast      Toaster
	Now        func() time.Time
}

// Knowledge is the knowledge base of learned rules
type Knowledge struct {
	p        KnowledgeParams
	rules    *query.Client[[]api.Rule]
	insights *query.Client[api.InsightQuestions]
}

// NewKnowledge makes the knowledge base
func NewKnowledge(p KnowledgeParams) *Knowledge {
	if p.Now == nil {
		p.Now = time.Now
	}
	if p.BrandID == nil {
		p.BrandID = func() string { return "" }
	}
	res := &Knowledge{p: p}
	res.rules = query.New("knowledge rules", func(ctx context.Context) ([]api.Rule, error) {
		return p.Backend.ListKnowledgeRules(ctx, p.SelectedID())
	})
	res.insights = query.New("insight questions", func(ctx context.Context) (api.InsightQuestions, error) {
		return p.Backend.GetInsightQuestions(ctx, p.SelectedID())
	})
	return res
}

// Rules returns the rules query
func (k *Knowledge) Rules() *query.Client[[]api.Rule] { return k.rules }

// Insights returns the insight questions query, its snapshot id is used by instructions
func (k *Knowledge) Insights() *query.Client[api.InsightQuestions] { return k.insights }

// Fetch reloads rules
func (k *Knowledge) Fetch(ctx context.Context) error { return k.rules.Fetch(ctx) }

// FetchInsights reloads insight questions
func (k *Knowledge) FetchInsights(ctx context.Context) error { return k.insights.Fetch(ctx) }

// All returns loaded rules, empty if nothing loaded
func (k *Knowledge) All() []api.Rule {
	rules, _ := k.rules.Data()
	return rules
}

// CreativeRules returns creative rules
func (k *Knowledge) CreativeRules() []api.Rule { return k.byType(api.RuleCreative) }

// TargetingRules returns targeting rules
func (k *Knowledge) TargetingRules() []api.Rule { return k.byType(api.RuleTargeting) }

// EvaluationRules returns evaluation rules
func (k *Knowledge) EvaluationRules() []api.Rule { return k.byType(api.RuleEvaluation) }

// Find returns loaded rule by id
func (k *Knowledge) Find(id string) (api.Rule, bool) {
	idx := slices.IndexFunc(k.All(), func(r api.Rule) bool { return r.ID == id })
	if idx < 0 {
		return api.Rule{}, false
	}
	return k.All()[idx], true
}

// LastRuleUpdated returns the latest rule update time, now if there are no rules
func (k *Knowledge) LastRuleUpdated() time.Time {
	rules := k.All()
	if len(rules) == 0 {
		return k.p.Now()
	}
	res := rules[0].UpdatedAt
	for _, r := range rules[1:] {
		if r.UpdatedAt.After(res) {
			res = r.UpdatedAt
		}
	}
	return res
}

// UpdateRuleStatus approves or declines the rule, pending status does nothing
func (k *Knowledge) UpdateRuleStatus(ctx context.Context, id string, status api.RuleStatus) error {
	switch status {
	case api.RuleApproved:
		return k.ApproveRule(ctx, id)
	case api.RuleDeclined:
		return k.DeclineRule(ctx, id)
	default:
		return nil
	}
}

// ApproveRule marks the rule approved locally, approves it remotely and reloads rules
func (k *Knowledge) ApproveRule(ctx context.Context, id string) error {
	return k.changeStatus(ctx, id, api.RuleApproved, k.p.Backend.ApproveKnowledgeRule)
}

// DeclineRule marks the rule declined locally, declines it remotely and reloads rules
func (k *Knowledge) DeclineRule(ctx context.Context, id string) error {
	return k.changeStatus(ctx, id, api.RuleDeclined, k.p.Backend.DeclineKnowledgeRule)
}

// UpdateRule changes rule title and content optimistically, then reloads rules
func (k *Knowledge) UpdateRule(ctx context.Context, id string, req api.RuleRequest) error {
	err := k.rules.OptimisticUpdate(ctx,
		func(ctx context.Context) error {
			_, err := k.p.Backend.UpdateKnowledgeRule(ctx, id, req)
			return err
		},
		k.patch(id, func(r *api.Rule) {
			if req.Title != "" {
				r.Title = req.Title
			}
			if req.Content != "" {
				r.Content = req.Content
			}
		}))
	if err != nil {
		k.p.Toast.Error("Failed to update rule. Please try again.")
		return err
	}
	return k.rules.Fetch(ctx)
}

// CreateRule adds a rule for the selected account and reloads rules
func (k *Knowledge) CreateRule(ctx context.Context, req api.RuleRequest) error {
	if req.AccountID == "" {
		req.AccountID = k.p.SelectedID()
	}
	if _, err := k.p.Backend.CreateKnowledgeRule(ctx, req); err != nil {
		k.p.Toast.Error("Failed to add rule. Please try again.")
		return fmt.Errorf("create knowledge rule: %w", err)
	}
	k.p.Toast.Success("Rule added")
	return k.rules.Fetch(ctx)
}

// OpenRuleDetail shows the rule with edit fields and saves the edit on confirm
func (k *Knowledge) OpenRuleDetail(ctx context.Context, id string) error {
	rule, ok := k.Find(id)
	if !ok {
		k.p.Toast.Error("Failed to find rule")
		return nil
	}
	resp, err := k.p.Dialogs.Show(ctx, dialog.Request{
		Kind:         dialog.KindRuleDetail,
		Title:        rule.Title,
		Description:  fmt.Sprintf("%s rule, %s", rule.Type, rule.Status),
		ConfirmLabel: "Save",
		CancelLabel:  "Close",
		Fields: []dialog.Field{
			{Name: "title", Label: "Title", Type: "text", Value: rule.Title},
			{Name: "content", Label: "Content", Type: "textarea", Value: rule.Content},
		},
		Data: map[string]string{"rule_id": rule.ID, "type": string(rule.Type), "status": string(rule.Status)},
	})
	if errors.Is(err, dialog.ErrDismissed) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("rule detail dialog: %w", err)
	}
	title, content := resp.Value("title"), resp.Value("content")
	if title == rule.Title && content == rule.Content {
		return nil
	}
	return k.UpdateRule(ctx, id, api.RuleRequest{Title: title, Content: content})
}

// OpenAddRuleDialog asks for a new rule and creates it on confirm
func (k *Knowledge) OpenAddRuleDialog(ctx context.Context, ruleType api.RuleType) error {
	resp, err := k.p.Dialogs.Show(ctx, dialog.Request{
		Kind:         dialog.KindAddRule,
		Title:        "Add rule",
		ConfirmLabel: "Add",
		CancelLabel:  "Cancel",
		Fields: []dialog.Field{
			{Name: "type", Label: "Type", Type: "select", Value: string(ruleType),
				Options: []string{string(api.RuleCreative), string(api.RuleTargeting), string(api.RuleEvaluation)}},
			{Name: "title", Label: "Title", Type: "text"},
			{Name: "content", Label: "Content", Type: "textarea"},
		},
	})
	if errors.Is(err, dialog.ErrDismissed) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("add rule dialog: %w", err)
	}
	req := api.RuleRequest{Type: api.RuleType(resp.Value("type")), Title: resp.Value("title"), Content: resp.Value("content")}
	if req.Type == "" {
		req.Type = ruleType
	}
	if req.Content == "" {
		k.p.Toast.Error("Rule content is required")
		return nil
	}
	return k.CreateRule(ctx, req)
}

// OpenInstructDialog asks for an instruction and submits it as insight feedback.
// Empty snapshotID falls back to the loaded insight questions.
func (k *Knowledge) OpenInstructDialog(ctx context.Context, snapshotID string) error {
	if snapshotID == "" {
		if q, ok := k.insights.Data(); ok {
			snapshotID = q.SnapshotID
		}
	}
	if snapshotID == "" {
		k.p.Toast.Error("Cannot submit instruction: missing snapshot information")
		return nil
	}
	if k.p.SelectedID() == "" && k.p.BrandID() == "" {
		k.p.Toast.Error("Cannot submit instruction: missing account or brand information")
		return nil
	}

	resp, err := k.p.Dialogs.Show(ctx, dialog.Request{
		Kind:         dialog.KindInstruct,
		Title:        "Instruct AdMax",
		Description:  "Tell AdMax what to focus on or avoid.",
		ConfirmLabel: "Submit",
		CancelLabel:  "Cancel",
		Fields:       []dialog.Field{{Name: "instruction", Label: "Instruction", Type: "textarea"}},
		Data:         map[string]string{"snapshot_id": snapshotID},
	})
	if errors.Is(err, dialog.ErrDismissed) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("instruct dialog: %w", err)
	}
	return k.submitInstruct(ctx, resp.Value("instruction"), snapshotID)
}

// Dispose drops cached rules
func (k *Knowledge) Dispose() {
	k.rules.Reset()
	k.insights.Reset()
}

func (k *Knowledge) submitInstruct(ctx context.Context, instruction, snapshotID string) error {
	accountID, brandID := k.p.SelectedID(), k.p.BrandID()
	if accountID == "" && brandID == "" {
		return errors.New("missing account id or brand id")
	}
	req := api.InsightFeedback{AccountID: accountID, SnapshotID: snapshotID, UserAnswer: instruction}
	if accountID == "" {
		req.BrandID = brandID
	}
	if err := k.p.Backend.SubmitInsightFeedback(ctx, req); err != nil {
		k.p.Toast.Error("Failed to submit instruction. Please try again.")
		return fmt.Errorf("submit instruction: %w", err)
	}
	k.p.Toast.Success("Instruction submitted successfully")
	return nil
}

func (k *Knowledge) changeStatus(ctx context.Context, id string, status api.RuleStatus, call func(ctx context.Context, id string) error) error {
	now := k.p.Now()
	err := k.rules.OptimisticUpdate(ctx,
		func(ctx context.Context) error { return call(ctx, id) },
		k.patch(id, func(r *api.Rule) {
			r.Status = status
			r.UpdatedAt = now
		}))
	if err != nil {
		k.p.Toast.Error(fmt.Sprintf("Failed to %s rule. Please try again.", verb(status)))
		return err
	}
	log.Printf("[DEBUG] rule %s %s", id, status)
	return k.rules.Fetch(ctx)
}

// patch returns updater applying fn to a copy of the rule with id, other rules are kept as is
func (k *Knowledge) patch(id string, fn func(r *api.Rule)) func([]api.Rule) []api.Rule {
	return func(rules []api.Rule) []api.Rule {
		if rules == nil {
			return nil
		}
		res := make([]api.Rule, len(rules))
		copy(res, rules)
		for i := range res {
			if res[i].ID == id {
				fn(&res[i])
			}
		}
		return res
	}
}

func (k *Knowledge) byType(t api.RuleType) []api.Rule {
	res := []api.Rule{}
	for _, r := range k.All() {
		if r.Type == t {
			res = append(res, r)
		}
	}
	return res
}

func verb(status api.RuleStatus) string {
	if status == api.RuleApproved {
		return "approve"
	}
	return "decline"
}
