package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusCompleted))
	assert.False(t, ValidStatus("paid"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("Completed"))
}

func TestCertificateAvailable(t *testing.T) {
	cases := []struct {
		payment, completion, path string
		want                      bool
	}{
		{StatusCompleted, StatusCompleted, "uploads/cert.pdf", true},
		{StatusPending, StatusCompleted, "uploads/cert.pdf", false},
		{StatusCompleted, StatusPending, "uploads/cert.pdf", false},
		{StatusCompleted, StatusCompleted, "", false},
		{StatusPending, StatusPending, "", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CertificateAvailable(tc.payment, tc.completion, tc.path),
			"payment=%s completion=%s path=%q", tc.payment, tc.completion, tc.path)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleFranchiseAdmin.Valid())
	assert.False(t, Role("super-admin").Valid())
	assert.False(t, Role("").Valid())
}
