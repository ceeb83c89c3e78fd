package schedule

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"solarops/internal/domain"
)

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id int64) (*domain.GanttTask, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GanttTask), args.Error(1)
}

func (m *MockTaskRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.GanttTask, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GanttTask), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, t *domain.GanttTask) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) UpdateActualDates(ctx context.Context, id int64, start, end *time.Time) error {
	args := m.Called(ctx, id, start, end)
	return args.Error(0)
}

type MockTaskProofRepository struct {
	mock.Mock
}

func (m *MockTaskProofRepository) Create(ctx context.Context, p *domain.TaskProof) error {
	args := m.Called(ctx, p)
	if p != nil {
		p.ID = 999
	}
	return args.Error(0)
}

func (m *MockTaskProofRepository) GetByID(ctx context.Context, id int64) (*domain.TaskProof, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskProof), args.Error(1)
}

func (m *MockTaskProofRepository) Update(ctx context.Context, p *domain.TaskProof) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockTaskProofRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.TaskProof, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskProof), args.Error(1)
}

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) MarkFinished(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockWorkLogRepository struct {
	mock.Mock
}

func (m *MockWorkLogRepository) GetFacilitator(ctx context.Context, projectID int64) (*domain.ProjectWorkLog, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectWorkLog), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) EarliestAcknowledged(ctx context.Context, projectID int64) (*domain.Payment, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, projectID int64, t domain.NotificationType, title, message string, emails []string) error {
	args := m.Called(ctx, projectID, t, title, message, emails)
	return args.Error(0)
}

type MockPaymentOracle struct {
	mock.Mock
}

func (m *MockPaymentOracle) IntentCreatedAt(ctx context.Context, intentID string) (time.Time, error) {
	args := m.Called(ctx, intentID)
	return args.Get(0).(time.Time), args.Error(1)
}

type MockAuditor struct {
	mock.Mock
}

func (m *MockAuditor) LogUserAction(ctx context.Context, userEmail, action, entityName string, entityID int64, details, ipAddress string) {
	m.Called(ctx, userEmail, action, entityName, entityID, details, ipAddress)
}

type scheduleMocks struct {
	tasks    *MockTaskRepository
	proofs   *MockTaskProofRepository
	projects *MockProjectRepository
	workLogs *MockWorkLogRepository
	payments *MockPaymentRepository
	users    *MockUserReader
	notifier *MockNotifier
	oracle   *MockPaymentOracle
	audit    *MockAuditor
}

func newServiceWithMocks() (*Service, *scheduleMocks) {
	m := &scheduleMocks{
		tasks:    new(MockTaskRepository),
		proofs:   new(MockTaskProofRepository),
		projects: new(MockProjectRepository),
		workLogs: new(MockWorkLogRepository),
		payments: new(MockPaymentRepository),
		users:    new(MockUserReader),
		notifier: new(MockNotifier),
		oracle:   new(MockPaymentOracle),
		audit:    new(MockAuditor),
	}
	svc := NewService(
		m.tasks, m.proofs, m.projects, m.workLogs, m.payments,
		m.users, m.notifier, m.oracle, m.audit, zap.NewNop(),
	)
	return svc, m
}
