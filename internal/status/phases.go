package status

import (
	"fmt"

	"github.com/anewmanvs/gcpinfra/api/v1alpha1"
)

// TransitionToSubmitting moves a ContainerVM into Submitting once the insert
// call has been accepted. A Failed resource may be submitted again.
func TransitionToSubmitting(vm *v1alpha1.ContainerVM, operation string) error {
	phase := vm.GetPhase()
	if phase != v1alpha1.PhasePending && phase != v1alpha1.PhaseFailed {
		return fmt.Errorf("cannot transition to Submitting from phase %s", phase)
	}

	vm.SetPhase(v1alpha1.PhaseSubmitting)
	vm.Status.OperationName = operation
	SetCondition(vm, v1alpha1.ConditionSubmitted, v1alpha1.ConditionTrue, "InsertAccepted", fmt.Sprintf("Operation %s started", operation))
	SetCondition(vm, v1alpha1.ConditionReady, v1alpha1.ConditionFalse, "Provisioning", "Instance creation in progress")
	return nil
}

// TransitionToProvisioned moves a Submitting ContainerVM into Provisioned.
func TransitionToProvisioned(vm *v1alpha1.ContainerVM, instanceURL string) error {
	if vm.GetPhase() != v1alpha1.PhaseSubmitting {
		return fmt.Errorf("cannot transition to Provisioned from phase %s", vm.GetPhase())
	}

	vm.SetPhase(v1alpha1.PhaseProvisioned)
	vm.Status.InstanceURL = instanceURL
	SetCondition(vm, v1alpha1.ConditionReady, v1alpha1.ConditionTrue, "InstanceCreated", "Instance exists and is booting its container")
	vm.UpdateObservedGeneration()
	return nil
}

// TransitionToFailed moves a ContainerVM into Failed from any phase.
func TransitionToFailed(vm *v1alpha1.ContainerVM, reason, message string) {
	vm.SetPhase(v1alpha1.PhaseFailed)
	SetCondition(vm, v1alpha1.ConditionReady, v1alpha1.ConditionFalse, reason, message)
}

// ResetForRetry returns a Failed ContainerVM to Pending and drops what the
// failed attempt recorded. Other phases are left alone.
func ResetForRetry(vm *v1alpha1.ContainerVM) {
	if vm.GetPhase() != v1alpha1.PhaseFailed {
		return
	}
	vm.SetPhase(v1alpha1.PhasePending)
	vm.Status.OperationName = ""
	vm.Status.InstanceURL = ""
	for _, t := range []string{v1alpha1.ConditionReady, v1alpha1.ConditionConfigResolved, v1alpha1.ConditionSubmitted} {
		RemoveCondition(vm, t)
	}
}

// IsInFlight reports whether an insert operation may still be running.
func IsInFlight(phase v1alpha1.Phase) bool {
	return phase == v1alpha1.PhaseSubmitting
}
