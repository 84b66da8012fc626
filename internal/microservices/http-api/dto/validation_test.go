package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestIsMoney(t *testing.T) {
	tests := []struct {
		value float64
		want  bool
	}{
		{25, true},
		{19.99, true},
		{0.01, true},
		{9999999999.99, true},
		{0.004, false},
		{12.345, false},
		{1e10, false},
		{-1e10, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsMoney(tt.value), "%v", tt.value)
	}
}

func TestContributionBinding(t *testing.T) {
	const project = "5f0c6c1e-8a43-4d7e-9a51-2b3c4d5e6f70"

	tests := []struct {
		name string
		req  CreateContributionRequest
		ok   bool
	}{
		{"valid", CreateContributionRequest{ProjectID: project, Amount: 50, PaymentMethod: "card"}, true},
		{"sub-cent", CreateContributionRequest{ProjectID: project, Amount: 0.004, PaymentMethod: "card"}, false},
		{"overflow", CreateContributionRequest{ProjectID: project, Amount: 1e10, PaymentMethod: "card"}, false},
		{"project not an id", CreateContributionRequest{ProjectID: "p1", Amount: 5, PaymentMethod: "card"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.req)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestProjectBinding(t *testing.T) {
	raised := 0.005
	err := binding.Validator.ValidateStruct(&UpdateProjectRequest{Title: "Roof", Goal: 10, Raised: &raised, Status: "active"})
	assert.Error(t, err)

	raised = 12.5
	err = binding.Validator.ValidateStruct(&UpdateProjectRequest{Title: "Roof", Goal: 10, Raised: &raised, Status: "active"})
	assert.NoError(t, err)

	err = binding.Validator.ValidateStruct(&ProjectQuery{BranchID: "north"})
	assert.Error(t, err)

	empty := ""
	err = binding.Validator.ValidateStruct(&CreateProjectRequest{Title: "Roof", Goal: 10, BranchID: &empty})
	assert.NoError(t, err)
}

func TestAssignmentBinding_EmptyBranchDetaches(t *testing.T) {
	empty, name := "", "north"
	assert.NoError(t, binding.Validator.ValidateStruct(&AssignmentRequest{BranchID: &empty}))
	assert.NoError(t, binding.Validator.ValidateStruct(&AssignmentRequest{}))
	assert.Error(t, binding.Validator.ValidateStruct(&AssignmentRequest{BranchID: &name}))
}
