package status

import (
	"errors"
	"testing"

	"github.com/anewmanvs/gcpinfra/api/v1alpha1"
)

func TestTransitionToSubmitting(t *testing.T) {
	tests := []struct {
		name      string
		phase     v1alpha1.Phase
		wantError bool
	}{
		{
			name:  "from Pending",
			phase: v1alpha1.PhasePending,
		},
		{
			name:  "retry from Failed",
			phase: v1alpha1.PhaseFailed,
		},
		{
			name:      "already Submitting",
			phase:     v1alpha1.PhaseSubmitting,
			wantError: true,
		},
		{
			name:      "already Provisioned",
			phase:     v1alpha1.PhaseProvisioned,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := v1alpha1.NewContainerVM("worker-1")
			vm.SetPhase(tt.phase)

			err := TransitionToSubmitting(vm, "operation-1")

			if tt.wantError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if vm.GetPhase() != tt.phase {
					t.Errorf("phase changed on error to %s", vm.GetPhase())
				}
				if vm.Status.OperationName != "" {
					t.Errorf("OperationName set on error: %q", vm.Status.OperationName)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if vm.GetPhase() != v1alpha1.PhaseSubmitting {
				t.Errorf("phase = %s, want Submitting", vm.GetPhase())
			}
			if vm.Status.OperationName != "operation-1" {
				t.Errorf("OperationName = %q, want operation-1", vm.Status.OperationName)
			}
			if !IsConditionTrue(vm, v1alpha1.ConditionSubmitted) {
				t.Error("Submitted condition should be True")
			}
			if !IsConditionFalse(vm, v1alpha1.ConditionReady) {
				t.Error("Ready condition should be False")
			}
		})
	}
}

func TestTransitionToProvisioned(t *testing.T) {
	tests := []struct {
		name      string
		phase     v1alpha1.Phase
		wantError bool
	}{
		{
			name:  "from Submitting",
			phase: v1alpha1.PhaseSubmitting,
		},
		{
			name:      "from Pending",
			phase:     v1alpha1.PhasePending,
			wantError: true,
		},
		{
			name:      "from Failed",
			phase:     v1alpha1.PhaseFailed,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := v1alpha1.NewContainerVM("worker-1")
			vm.Generation = 2
			vm.SetPhase(tt.phase)

			link := "https://www.googleapis.com/compute/v1/projects/proj/zones/southamerica-east1-a/instances/worker-1"
			err := TransitionToProvisioned(vm, link)

			if tt.wantError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if vm.GetPhase() != tt.phase {
					t.Errorf("phase changed on error to %s", vm.GetPhase())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if vm.GetPhase() != v1alpha1.PhaseProvisioned {
				t.Errorf("phase = %s, want Provisioned", vm.GetPhase())
			}
			if vm.Status.InstanceURL != link {
				t.Errorf("InstanceURL = %q, want %q", vm.Status.InstanceURL, link)
			}
			if !IsConditionTrue(vm, v1alpha1.ConditionReady) {
				t.Error("Ready condition should be True")
			}
			if vm.Status.ObservedGeneration != 2 {
				t.Errorf("ObservedGeneration = %d, want 2", vm.Status.ObservedGeneration)
			}
		})
	}
}

func TestTransitionToFailed(t *testing.T) {
	for _, phase := range []v1alpha1.Phase{v1alpha1.PhasePending, v1alpha1.PhaseSubmitting, v1alpha1.PhaseProvisioned} {
		t.Run(string(phase), func(t *testing.T) {
			vm := v1alpha1.NewContainerVM("worker-1")
			vm.SetPhase(phase)
			TransitionToFailed(vm, "QuotaExceeded", "CPUS quota exceeded")

			if vm.GetPhase() != v1alpha1.PhaseFailed {
				t.Errorf("phase = %s, want Failed", vm.GetPhase())
			}
			cond := GetCondition(vm, v1alpha1.ConditionReady)
			if cond == nil || cond.Reason != "QuotaExceeded" || cond.Message != "CPUS quota exceeded" {
				t.Errorf("Ready condition = %+v", cond)
			}
		})
	}
}

func TestIsInFlight(t *testing.T) {
	tests := []struct {
		phase v1alpha1.Phase
		want  bool
	}{
		{phase: v1alpha1.PhasePending},
		{phase: v1alpha1.PhaseSubmitting, want: true},
		{phase: v1alpha1.PhaseProvisioned},
		{phase: v1alpha1.PhaseFailed},
	}

	for _, tt := range tests {
		t.Run(string(tt.phase), func(t *testing.T) {
			if got := IsInFlight(tt.phase); got != tt.want {
				t.Errorf("IsInFlight(%s) = %v, want %v", tt.phase, got, tt.want)
			}
		})
	}
}

func TestResetForRetry(t *testing.T) {
	vm := v1alpha1.NewContainerVM("worker-1")
	MarkConfigResolved(vm, "proj", "southamerica-east1-a")
	if err := TransitionToSubmitting(vm, "operation-1"); err != nil {
		t.Fatalf("TransitionToSubmitting() error = %v", err)
	}
	MarkOperationFailed(vm, errors.New("QUOTA_EXCEEDED"))

	ResetForRetry(vm)

	if vm.GetPhase() != v1alpha1.PhasePending {
		t.Errorf("phase = %s, want Pending", vm.GetPhase())
	}
	if vm.Status.OperationName != "" {
		t.Errorf("OperationName = %q, want cleared", vm.Status.OperationName)
	}
	if len(vm.Status.Conditions) != 0 {
		t.Errorf("conditions = %+v, want none", vm.Status.Conditions)
	}
}

func TestResetForRetry_NotFailed(t *testing.T) {
	vm := v1alpha1.NewContainerVM("worker-1")
	if err := TransitionToSubmitting(vm, "operation-1"); err != nil {
		t.Fatalf("TransitionToSubmitting() error = %v", err)
	}

	ResetForRetry(vm)

	if vm.GetPhase() != v1alpha1.PhaseSubmitting || vm.Status.OperationName != "operation-1" {
		t.Errorf("status = %+v, want untouched", vm.Status)
	}
}
