package setup

import (
	"slices"

	"github.com/umputun/admax/app/enums"
)

// baseSteps are shown for every flow
var baseSteps = []enums.SetupStep{
	enums.SetupStepConnect,
	enums.SetupStepProducts,
	enums.SetupStepAnalysis,
	enums.SetupStepQuestions,
}

// VisibleSteps returns wizard steps of the flow. Structure review is shown for both flows,
// template config only for the account flow.
func VisibleSteps(accountFlow bool) []enums.SetupStep {
	res := slices.Clone(baseSteps)
	res = append(res, enums.SetupStepStructure)
	if accountFlow {
		res = append(res, enums.SetupStepTemplate)
	}
	return res
}

// fitStep returns step if it is visible, otherwise the last visible step
func fitStep(step enums.SetupStep, visible []enums.SetupStep) enums.SetupStep {
	if slices.Contains(visible, step) {
		return step
	}
	if len(visible) == 0 {
		return enums.SetupStepConnect
	}
	return visible[len(visible)-1]
}

// prevStep is the step the back button leads to, false when there is none
func prevStep(step enums.SetupStep) (enums.SetupStep, bool) {
	switch step {
	case enums.SetupStepProducts:
		return enums.SetupStepConnect, true
	case enums.SetupStepAnalysis, enums.SetupStepQuestions:
		return enums.SetupStepProducts, true
	case enums.SetupStepStructure:
		return enums.SetupStepQuestions, true
	case enums.SetupStepTemplate:
		return enums.SetupStepStructure, true
	default:
		return enums.SetupStepConnect, false
	}
}
