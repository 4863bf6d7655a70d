package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OlgaArenas22/phpMiW/internal/domain/entity"
)

func uintPtr(v uint) *uint { return &v }

func adminCaller() *Caller {
	return &Caller{ID: 1, Roles: entity.Roles{entity.RoleUser, entity.RoleAdmin}}
}

func userCaller() *Caller {
	return &Caller{ID: 2, Roles: entity.Roles{entity.RoleUser}}
}

func TestResolveOwnerScopeUnauthenticated(t *testing.T) {
	_, err := ResolveOwnerScope(nil, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestResolveOwnerScopeAdminGlobal(t *testing.T) {
	scope, err := ResolveOwnerScope(adminCaller(), nil)
	require.NoError(t, err)
	assert.Nil(t, scope.OwnerID)
}

func TestResolveOwnerScopeAdminAnyOwner(t *testing.T) {
	scope, err := ResolveOwnerScope(adminCaller(), uintPtr(42))
	require.NoError(t, err)
	require.NotNil(t, scope.OwnerID)
	assert.Equal(t, uint(42), *scope.OwnerID)
}

func TestResolveOwnerScopeUserDefaultsToSelf(t *testing.T) {
	scope, err := ResolveOwnerScope(userCaller(), nil)
	require.NoError(t, err)
	require.NotNil(t, scope.OwnerID)
	assert.Equal(t, uint(2), *scope.OwnerID)
}

func TestResolveOwnerScopeUserOwnIDAllowed(t *testing.T) {
	scope, err := ResolveOwnerScope(userCaller(), uintPtr(2))
	require.NoError(t, err)
	require.NotNil(t, scope.OwnerID)
	assert.Equal(t, uint(2), *scope.OwnerID)
}

func TestResolveOwnerScopeUserOtherOwnerForbidden(t *testing.T) {
	_, err := ResolveOwnerScope(userCaller(), uintPtr(1))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCanAccess(t *testing.T) {
	own := &entity.Result{ID: 10, UserID: 2}
	foreign := &entity.Result{ID: 11, UserID: 1}

	assert.NoError(t, CanAccess(userCaller(), own))
	assert.ErrorIs(t, CanAccess(userCaller(), foreign), ErrForbidden)
	assert.NoError(t, CanAccess(adminCaller(), foreign))
	assert.ErrorIs(t, CanAccess(nil, own), ErrUnauthorized)
}
