// Package models defines the core domain models for the back office.
//
// # Models
//
//   - User: account with a role tag; CUSTOMER users generate the income
//     that reporting cares about, everything else is company-internal
//   - Order: a customer's purchase request with one or more lines
//   - OrderLine: one product (egg type/color) entry within an order
//   - Bill: an invoice issued against an order
//   - Payment: an amount paid against a bill
//   - BillView: read-only projection of a Bill joined with its order's
//     customer name, date and state (never stored)
//
// # Design Principles
//
// 1. **ID strings instead of pointers** for relationships, no circular refs
// 2. **Closed enums with case-insensitive parsing**: Role, OrderState and
// PaymentMethod are normalized at the boundary and stored canonical
// 3. **Derived views stay out of the schema**: BillView is computed by a
// join at read time
package models
