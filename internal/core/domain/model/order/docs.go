// Package order provides the Order aggregate root for the shipping system.
//
// The package includes:
//   - Order: the aggregate root managing identity, carrier and shipment
//     links, tracking, proof of delivery, and failure reporting
//   - Status: the order lifecycle states and their consistency rules
//
// Key business rules:
//   - Orders are created Pending with no carrier and no shipment
//   - The one-shot assignment path refuses to overwrite an existing
//     carrier; the general update path is the only reassignment route
//   - A shipment link never moves to a second shipment
//   - Proof of delivery exists only on Delivered orders, an error message
//     only on Failed orders
package order
