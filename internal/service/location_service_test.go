package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hejazi/internal/domain"
	"hejazi/internal/service"
	"hejazi/mocks"
)

type locationDeps struct {
	loc   *mocks.MockLocationRepo
	dist  *mocks.MockDistributionRepo
	users *mocks.MockUserRepo
	svc   service.LocationService
}

func newLocationDeps() locationDeps {
	d := locationDeps{
		loc:   new(mocks.MockLocationRepo),
		dist:  new(mocks.MockDistributionRepo),
		users: new(mocks.MockUserRepo),
	}
	d.svc = service.NewLocationService(d.loc, d.dist, d.users)
	return d
}

func TestLocationService_Assign_TakesSectorFromBuilding(t *testing.T) {
	d := newLocationDeps()
	tenantID, adminID, inspectorID := uuid.New(), uuid.New(), uuid.New()
	building := &domain.Building{ID: uuid.New(), SectorID: uuid.New()}
	sb := &domain.Subbuilding{ID: uuid.New(), BuildingID: building.ID}

	d.users.On("GetByID", mock.Anything, tenantID, inspectorID).Return(&domain.User{ID: inspectorID, IsActive: true}, nil)
	d.loc.On("GetBuilding", mock.Anything, tenantID, building.ID).Return(building, nil)
	d.loc.On("GetSubbuilding", mock.Anything, tenantID, sb.ID).Return(sb, nil)
	d.dist.On("Create", mock.Anything, mock.AnythingOfType("*domain.Distribution")).Return(nil)

	got, err := d.svc.Assign(context.Background(), tenantID, adminID, service.AssignInput{
		InspectorID: inspectorID, BuildingID: building.ID, SubbuildingID: &sb.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, building.SectorID, got.SectorID)
	assert.Equal(t, adminID, got.AssignedBy)
	assert.Equal(t, sb.ID, *got.SubbuildingID)
}

func TestLocationService_Assign_Rejections(t *testing.T) {
	tenantID, inspectorID := uuid.New(), uuid.New()
	building := &domain.Building{ID: uuid.New(), SectorID: uuid.New()}
	foreign := &domain.Subbuilding{ID: uuid.New(), BuildingID: uuid.New()}

	t.Run("inactive inspector", func(t *testing.T) {
		d := newLocationDeps()
		d.users.On("GetByID", mock.Anything, tenantID, inspectorID).Return(&domain.User{ID: inspectorID}, nil)

		_, err := d.svc.Assign(context.Background(), tenantID, uuid.New(), service.AssignInput{InspectorID: inspectorID, BuildingID: building.ID})
		assert.ErrorIs(t, err, domain.ErrUserInactive)
	})

	t.Run("subbuilding of another building", func(t *testing.T) {
		d := newLocationDeps()
		d.users.On("GetByID", mock.Anything, tenantID, inspectorID).Return(&domain.User{ID: inspectorID, IsActive: true}, nil)
		d.loc.On("GetBuilding", mock.Anything, tenantID, building.ID).Return(building, nil)
		d.loc.On("GetSubbuilding", mock.Anything, tenantID, foreign.ID).Return(foreign, nil)

		_, err := d.svc.Assign(context.Background(), tenantID, uuid.New(), service.AssignInput{
			InspectorID: inspectorID, BuildingID: building.ID, SubbuildingID: &foreign.ID,
		})
		assert.ErrorIs(t, err, domain.ErrLocationMismatch)
		d.dist.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown building", func(t *testing.T) {
		d := newLocationDeps()
		d.users.On("GetByID", mock.Anything, tenantID, inspectorID).Return(&domain.User{ID: inspectorID, IsActive: true}, nil)
		d.loc.On("GetBuilding", mock.Anything, tenantID, building.ID).Return(nil, domain.ErrNotFound)

		_, err := d.svc.Assign(context.Background(), tenantID, uuid.New(), service.AssignInput{InspectorID: inspectorID, BuildingID: building.ID})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestLocationService_CreateSubbuilding_RequiresBuilding(t *testing.T) {
	d := newLocationDeps()
	tenantID, buildingID := uuid.New(), uuid.New()
	d.loc.On("GetBuilding", mock.Anything, tenantID, buildingID).Return(nil, domain.ErrNotFound)

	_, err := d.svc.CreateSubbuilding(context.Background(), tenantID, service.SubbuildingInput{BuildingID: buildingID, Name: "Tower B"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	d.loc.AssertNotCalled(t, "CreateSubbuilding", mock.Anything, mock.Anything)
}

func TestLocationService_Unassign_NotFound(t *testing.T) {
	d := newLocationDeps()
	tenantID, id := uuid.New(), uuid.New()
	d.dist.On("Delete", mock.Anything, tenantID, id).Return(domain.ErrNotFound)

	err := d.svc.Unassign(context.Background(), tenantID, id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
