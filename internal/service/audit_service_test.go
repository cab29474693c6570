package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/appdotbuilder/canossa-info-system/internal/dto"
	"github.com/appdotbuilder/canossa-info-system/internal/repository"
)

func ptrUint(v uint) *uint {
	return &v
}

func TestAuditServiceRecordMasksSensitiveMetadata(t *testing.T) {
	db := newTestDB(t, "audit_service_mask")
	svc := NewAuditService(repository.NewAuditLogRepository(db), zerolog.Nop())
	ctx := context.Background()

	err := svc.Record(ctx, AuditEntry{
		Actor:      Actor{ID: 1, Role: "Admin"},
		Action:     "Administrator.Created",
		EntityType: "administrator",
		EntityID:   ptrUint(5),
		Metadata: map[string]interface{}{
			"email":    "head@canossa.test",
			"username": "head",
		},
	})
	require.NoError(t, err)

	list, err := svc.List(ctx, dto.AuditLogListRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	entry := list.Items[0]
	require.Equal(t, "h***d@canossa.test", entry.Metadata["email"])
	require.Equal(t, "head", entry.Metadata["username"])
	require.Equal(t, "admin", entry.ActorRole)
	require.Equal(t, "administrator.created", entry.Action)
	require.Equal(t, uint(5), *entry.EntityID)
}

func TestAuditServiceRecordRequiresActionAndEntity(t *testing.T) {
	db := newTestDB(t, "audit_service_required")
	svc := NewAuditService(repository.NewAuditLogRepository(db), zerolog.Nop())

	require.Error(t, svc.Record(context.Background(), AuditEntry{EntityType: "page_content"}))
	require.Error(t, svc.Record(context.Background(), AuditEntry{Action: "page_content.created"}))
}

func TestAuditServiceListPaginatesAndFilters(t *testing.T) {
	db := newTestDB(t, "audit_service_list")
	svc := NewAuditService(repository.NewAuditLogRepository(db), zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Record(ctx, AuditEntry{Action: "campus_activity.created", EntityType: "campus_activity", EntityID: ptrUint(uint(i + 1))}))
	}
	require.NoError(t, svc.Record(ctx, AuditEntry{Action: "page_content.created", EntityType: "page_content"}))

	list, err := svc.List(ctx, dto.AuditLogListRequest{Page: 1, PageSize: 2, EntityType: "Campus_Activity"})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	require.Equal(t, int64(3), list.Pagination.TotalItems)
	require.Equal(t, 2, list.Pagination.TotalPages)
	require.Equal(t, uint(3), *list.Items[0].EntityID)
	require.Equal(t, "anonymous", list.Items[0].ActorRole)

	list, err = svc.List(ctx, dto.AuditLogListRequest{PageSize: 500})
	require.NoError(t, err)
	require.Equal(t, 200, list.Pagination.PageSize)
	require.Len(t, list.Items, 4)
}
