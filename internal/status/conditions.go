// Package status manages ContainerVM status: phase transitions and conditions.
package status

import (
	"github.com/anewmanvs/gcpinfra/api/v1alpha1"
)

// SetCondition adds or updates the condition of type condType.
// LastTransitionTime only moves when the status changes.
func SetCondition(vm *v1alpha1.ContainerVM, condType string, status v1alpha1.ConditionStatus, reason, message string) {
	now := v1alpha1.Now()

	for i := range vm.Status.Conditions {
		existing := &vm.Status.Conditions[i]
		if existing.Type != condType {
			continue
		}
		if existing.Status != status {
			existing.LastTransitionTime = now
		}
		existing.Status = status
		existing.Reason = reason
		existing.Message = message
		existing.ObservedGeneration = vm.Generation
		return
	}

	vm.Status.Conditions = append(vm.Status.Conditions, v1alpha1.Condition{
		Type:               condType,
		Status:             status,
		ObservedGeneration: vm.Generation,
		LastTransitionTime: now,
		Reason:             reason,
		Message:            message,
	})
}

// GetCondition returns the condition of type condType, or nil.
func GetCondition(vm *v1alpha1.ContainerVM, condType string) *v1alpha1.Condition {
	for i := range vm.Status.Conditions {
		if vm.Status.Conditions[i].Type == condType {
			return &vm.Status.Conditions[i]
		}
	}
	return nil
}

// IsConditionTrue reports whether the condition exists with status True.
func IsConditionTrue(vm *v1alpha1.ContainerVM, condType string) bool {
	cond := GetCondition(vm, condType)
	return cond != nil && cond.Status == v1alpha1.ConditionTrue
}

// IsConditionFalse reports whether the condition exists with status False.
func IsConditionFalse(vm *v1alpha1.ContainerVM, condType string) bool {
	cond := GetCondition(vm, condType)
	return cond != nil && cond.Status == v1alpha1.ConditionFalse
}

// RemoveCondition removes the condition of type condType.
func RemoveCondition(vm *v1alpha1.ContainerVM, condType string) {
	filtered := make([]v1alpha1.Condition, 0, len(vm.Status.Conditions))
	for _, c := range vm.Status.Conditions {
		if c.Type != condType {
			filtered = append(filtered, c)
		}
	}
	vm.Status.Conditions = filtered
}

// MarkConfigResolved records the zone the resource will be submitted to.
func MarkConfigResolved(vm *v1alpha1.ContainerVM, project, zone string) {
	vm.Status.Zone = zone
	SetCondition(vm, v1alpha1.ConditionConfigResolved, v1alpha1.ConditionTrue, "ConfigResolved",
		"Project "+project+", zone "+zone)
}

// MarkConfigFailed records a provider configuration failure and fails the resource.
func MarkConfigFailed(vm *v1alpha1.ContainerVM, err error) {
	SetCondition(vm, v1alpha1.ConditionConfigResolved, v1alpha1.ConditionFalse, "ConfigFailed", err.Error())
	TransitionToFailed(vm, "ConfigFailed", err.Error())
}

// MarkSubmitFailed records a rejected insert call and fails the resource.
func MarkSubmitFailed(vm *v1alpha1.ContainerVM, err error) {
	SetCondition(vm, v1alpha1.ConditionSubmitted, v1alpha1.ConditionFalse, "InsertRejected", err.Error())
	TransitionToFailed(vm, "InsertRejected", err.Error())
}

// MarkOperationFailed records a failed insert operation and fails the resource.
func MarkOperationFailed(vm *v1alpha1.ContainerVM, err error) {
	TransitionToFailed(vm, "OperationFailed", err.Error())
}
