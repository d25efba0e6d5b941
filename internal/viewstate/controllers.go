package viewstate

import (
	"github.com/Harshverma1208/smartech/internal/models"
	"github.com/Harshverma1208/smartech/internal/operations"
)

// Per-entity controllers with the search fields each page matches against.

func ForCustomers(ops *operations.Customers) *Controller[models.Customer] {
	return New(ops.ListAll, func(c models.Customer) []string {
		return []string{c.Name, c.Email, c.CompanyName}
	})
}

func ForInventory(ops *operations.Inventory) *Controller[models.InventoryItem] {
	return New(ops.ListAll, func(i models.InventoryItem) []string {
		return []string{i.ProductName, i.SKU}
	})
}

func ForInvoices(ops *operations.Invoices) *Controller[models.Invoice] {
	return New(ops.ListAll, func(v models.Invoice) []string {
		return []string{v.InvoiceNumber, v.Customer.Name, v.Status}
	})
}

func ForSalaries(ops *operations.Salaries) *Controller[models.SalaryRecord] {
	return New(ops.ListAll, func(s models.SalaryRecord) []string {
		return []string{s.EmployeeName, s.Position}
	})
}
