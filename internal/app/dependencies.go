package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobsight/jobsight/internal/config"
	"github.com/jobsight/jobsight/internal/event_bus"
	"github.com/jobsight/jobsight/internal/utils"
	"github.com/jobsight/jobsight/pkg/contact"
	"github.com/jobsight/jobsight/pkg/estimate"
	"github.com/jobsight/jobsight/pkg/expense"
	"github.com/jobsight/jobsight/pkg/gcal"
	"github.com/jobsight/jobsight/pkg/project"
	"github.com/jobsight/jobsight/pkg/schedule"
	"github.com/jobsight/jobsight/pkg/timeentry"
	"github.com/jobsight/jobsight/pkg/user"
	"github.com/jobsight/jobsight/pkg/workorder"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus *event_bus.EventBus

	UserService user.Service
	UserHandler *user.Handler

	ContactService *contact.Service
	ContactHandler *contact.Handler

	ProjectService *project.Service
	ProjectHandler *project.Handler

	EstimateService *estimate.Service
	EstimateHandler *estimate.Handler

	TimeEntryService *timeentry.Service
	TimeEntryHandler *timeentry.Handler

	ExpenseService *expense.Service
	ExpenseHandler *expense.Handler

	WorkOrderService *workorder.Service
	WorkOrderHandler *workorder.Handler

	ScheduleService *schedule.Service
	ScheduleHandler *schedule.Handler

	GoogleAuth     *gcal.GoogleAuth
	GoogleService  gcal.Service
	GoogleHandler  *gcal.Handler
	WebhookHandler *gcal.WebhookHandler
	SyncSubscriber *gcal.Subscriber

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Bus = event_bus.NewEventBus()
	deps.Clock = utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db), cfg.Google.TimeZone)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.ContactService = contact.NewService(contact.NewRepository(db))
	deps.ContactHandler = contact.NewHandler(deps.ContactService)

	deps.ProjectService = project.NewService(project.NewRepository(db))
	deps.ProjectHandler = project.NewHandler(deps.ProjectService)

	deps.EstimateService = estimate.NewService(estimate.NewRepository(db))
	deps.EstimateHandler = estimate.NewHandler(deps.EstimateService)

	deps.TimeEntryService = timeentry.NewService(timeentry.NewRepository(db), deps.Clock)
	deps.TimeEntryHandler = timeentry.NewHandler(deps.TimeEntryService)

	deps.ExpenseService = expense.NewService(expense.NewRepository(db))
	deps.ExpenseHandler = expense.NewHandler(deps.ExpenseService)

	deps.WorkOrderService = workorder.NewService(workorder.NewRepository(db))
	deps.WorkOrderHandler = workorder.NewHandler(deps.WorkOrderService)

	deps.ScheduleService = schedule.NewService(schedule.NewRepository(db), deps.Bus)
	deps.ScheduleHandler = schedule.NewHandler(deps.ScheduleService)

	deps.GoogleAuth = gcal.NewGoogleAuth(db, deps.UserService, cfg)
	deps.GoogleService = gcal.NewService(deps.GoogleAuth, deps.UserService, cfg.Google)
	deps.GoogleHandler = gcal.NewHandler(deps.GoogleService)
	deps.WebhookHandler = gcal.NewWebhookHandler(deps.GoogleService, deps.ScheduleService, cfg.Google)
	deps.SyncSubscriber = gcal.NewSubscriber(deps.GoogleService, deps.ScheduleService)
	deps.SyncSubscriber.Register(deps.Bus)

	return deps
}
