package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func TestUserModel_SoftDeleteExcludesRemovedRows(t *testing.T) {
	sch, err := schema.Parse(&UserModel{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	field := sch.LookUpField("DeletedAt")
	require.NotNil(t, field)

	// Soft deletion hangs off the DeletedAt field type; the query clause
	// it registers is what keeps removed accounts out of every lookup.
	var found bool
	for _, c := range sch.QueryClauses {
		if _, ok := c.(gorm.SoftDeleteQueryClause); ok {
			found = true
		}
	}
	assert.True(t, found, "user queries must exclude soft-deleted rows")
}
