package queue

import (
	"fmt"
	"strings"

	"github.com/umputun/admax/app/api"
	"github.com/umputun/admax/app/dialog"
)

// rejection reason categories offered by the reject dialog
var (
	creationRejectReasons = []string{"poor_creative_quality", "irrelevant_product", "wrong_targeting", "budget_concerns", "other"}
	analysisRejectReasons = []string{"disagree_with_analysis", "timing_not_right", "budget_concerns", "other"}
)

func rejectDialog(itemName, itemType string, reasons []string) dialog.Request {
	return dialog.Request{
		Kind:         dialog.KindReject,
		Title:        fmt.Sprintf("Reject %s", strings.ReplaceAll(itemType, "-", " ")),
		Description:  fmt.Sprintf("Tell us why %q doesn't work for you, it helps to improve the next suggestions.", itemName),
		ConfirmLabel: "Reject",
		CancelLabel:  "Cancel",
		Fields: []dialog.Field{
			{Name: "categories", Label: "Reasons", Type: "checkbox", Options: reasons},
			{Name: "reason", Label: "Details", Type: "textarea"},
		},
		Data: map[string]string{"item_type": itemType},
	}
}

func rejectRequest(resp dialog.Response) api.RejectRequest {
	categories := resp.Values["categories"]
	if categories == nil {
		categories = []string{}
	}
	return api.RejectRequest{RejectionReason: categories, RejectionDetails: resp.Value("reason")}
}
