package app

import (
	"github.com/gorilla/mux"
	"github.com/jobsight/jobsight/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user", deps.UserHandler.GetAvailableUsers).Methods("GET")

	// Contacts
	r.HandleFunc("/api/contact", deps.ContactHandler.CreateContact).Methods("POST")
	r.HandleFunc("/api/contact", deps.ContactHandler.ListContacts).Methods("GET")
	r.HandleFunc("/api/contact/{contactId}", deps.ContactHandler.GetContact).Methods("GET")
	r.HandleFunc("/api/contact/{contactId}", deps.ContactHandler.UpdateContact).Methods("PUT")
	r.HandleFunc("/api/contact/{contactId}", deps.ContactHandler.ArchiveContact).Methods("DELETE")
	r.HandleFunc("/api/contact/{contactId}/restore", deps.ContactHandler.RestoreContact).Methods("POST")

	// Projects
	r.HandleFunc("/api/project", deps.ProjectHandler.CreateProject).Methods("POST")
	r.HandleFunc("/api/project", deps.ProjectHandler.ListProjects).Methods("GET")
	r.HandleFunc("/api/project/{projectId}", deps.ProjectHandler.GetProject).Methods("GET")
	r.HandleFunc("/api/project/{projectId}", deps.ProjectHandler.UpdateProject).Methods("PUT")
	r.HandleFunc("/api/project/{projectId}", deps.ProjectHandler.DeleteProject).Methods("DELETE")

	// Estimates
	r.HandleFunc("/api/estimate", deps.EstimateHandler.CreateEstimate).Methods("POST")
	r.HandleFunc("/api/estimate", deps.EstimateHandler.ListEstimates).Queries("projectId", "{projectId}").Methods("GET")
	r.HandleFunc("/api/estimate/{estimateId}", deps.EstimateHandler.GetEstimate).Methods("GET")
	r.HandleFunc("/api/estimate/{estimateId}", deps.EstimateHandler.UpdateEstimate).Methods("PUT")
	r.HandleFunc("/api/estimate/{estimateId}", deps.EstimateHandler.DeleteEstimate).Methods("DELETE")
	r.HandleFunc("/api/estimate/{estimateId}/item", deps.EstimateHandler.AddLineItem).Methods("POST")
	r.HandleFunc("/api/estimate/{estimateId}/item/order", deps.EstimateHandler.ReorderLineItems).Methods("PUT")
	r.HandleFunc("/api/estimate/{estimateId}/item/{itemId}", deps.EstimateHandler.UpdateLineItem).Methods("PUT")
	r.HandleFunc("/api/estimate/{estimateId}/item/{itemId}", deps.EstimateHandler.DeleteLineItem).Methods("DELETE")

	// Time tracking
	r.HandleFunc("/api/timeentry", deps.TimeEntryHandler.StartEntry).Methods("POST")
	r.HandleFunc("/api/timeentry", deps.TimeEntryHandler.ListEntries).Methods("GET")
	r.HandleFunc("/api/timeentry/employee/{employeeId}/stop", deps.TimeEntryHandler.StopEntry).Methods("POST")
	r.HandleFunc("/api/timeentry/{entryId}", deps.TimeEntryHandler.DeleteEntry).Methods("DELETE")

	// Expenses
	r.HandleFunc("/api/expense", deps.ExpenseHandler.CreateExpense).Methods("POST")
	r.HandleFunc("/api/expense", deps.ExpenseHandler.ListExpenses).Queries("projectId", "{projectId}").Methods("GET")
	r.HandleFunc("/api/expense/total", deps.ExpenseHandler.ProjectTotal).Queries("projectId", "{projectId}").Methods("GET")
	r.HandleFunc("/api/expense/{expenseId}", deps.ExpenseHandler.GetExpense).Methods("GET")
	r.HandleFunc("/api/expense/{expenseId}", deps.ExpenseHandler.UpdateExpense).Methods("PUT")
	r.HandleFunc("/api/expense/{expenseId}", deps.ExpenseHandler.DeleteExpense).Methods("DELETE")

	// Work orders
	r.HandleFunc("/api/workorder", deps.WorkOrderHandler.CreateWorkOrder).Methods("POST")
	r.HandleFunc("/api/workorder", deps.WorkOrderHandler.ListWorkOrders).Queries("projectId", "{projectId}").Methods("GET")
	r.HandleFunc("/api/workorder/{workOrderId}", deps.WorkOrderHandler.GetWorkOrder).Methods("GET")
	r.HandleFunc("/api/workorder/{workOrderId}", deps.WorkOrderHandler.UpdateWorkOrder).Methods("PUT")
	r.HandleFunc("/api/workorder/{workOrderId}", deps.WorkOrderHandler.DeleteWorkOrder).Methods("DELETE")

	// Schedule
	r.HandleFunc("/api/schedule", deps.ScheduleHandler.CreateItem).Methods("POST")
	r.HandleFunc("/api/schedule", deps.ScheduleHandler.GetItems).Methods("GET")
	r.HandleFunc("/api/schedule/export", deps.ScheduleHandler.ExportICS).Queries("projectId", "{projectId}").Methods("GET")
	r.HandleFunc("/api/schedule/{itemId}", deps.ScheduleHandler.UpdateItem).Methods("PUT")
	r.HandleFunc("/api/schedule/{itemId}", deps.ScheduleHandler.DeleteItem).Methods("DELETE")

	// Google Calendar integration
	r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/integrations/google/calendars", deps.GoogleHandler.ListCalendars).Methods("GET")
	r.HandleFunc("/api/integrations/google/webhook", deps.WebhookHandler.HandleNotification).Methods("POST")
}
