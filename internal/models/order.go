package models

import (
	"strconv"
	"time"
)

// DateLayout is the calendar format used across both pipelines' CSV files.
const DateLayout = "2006-01-02"

// OrderRecord is one synthetic order produced by the generate-orders pipeline.
type OrderRecord struct {
	OrderID              string    `db:"order_id"`
	CustomerID           string    `db:"customer_id"`
	OrderDate            time.Time `db:"order_date"`
	IsPrimeMember        bool      `db:"is_prime_member"`
	ExpectedDeliveryDate time.Time `db:"expected_delivery_date"`
	ActualDeliveryDate   time.Time `db:"actual_delivery_date"`
	DeliveryStatus       string    `db:"delivery_status"`
	Carrier              string    `db:"carrier"`
	DeliveryCost         float64   `db:"delivery_cost_to_amazon"`
	ProductID            string    `db:"product_id"`
	OrderQuantity        int       `db:"order_quantity"`
	DestinationZipCode   string    `db:"destination_zip_code"`
}

// Delivery statuses
const (
	StatusEarly  = "Early"
	StatusOnTime = "On-Time"
	StatusLate   = "Late"
)

// CarrierAMZL is the in-house last-mile carrier; every other carrier is
// billed at the third-party rate.
const CarrierAMZL = "AMZL"

// OrderCSVHeader is the column order of the simulated orders CSV. The
// warehouse loader relies on this exact order when reading the file back.
var OrderCSVHeader = []string{
	"order_id",
	"customer_id",
	"order_date",
	"is_prime_member",
	"expected_delivery_date",
	"actual_delivery_date",
	"delivery_status",
	"carrier",
	"delivery_cost_to_amazon",
	"product_id",
	"order_quantity",
	"destination_zip_code",
}

// CSVRow renders the record in OrderCSVHeader order.
func (r OrderRecord) CSVRow() []string {
	return []string{
		r.OrderID,
		r.CustomerID,
		r.OrderDate.Format(DateLayout),
		strconv.FormatBool(r.IsPrimeMember),
		r.ExpectedDeliveryDate.Format(DateLayout),
		r.ActualDeliveryDate.Format(DateLayout),
		r.DeliveryStatus,
		r.Carrier,
		strconv.FormatFloat(r.DeliveryCost, 'f', 2, 64),
		r.ProductID,
		strconv.Itoa(r.OrderQuantity),
		r.DestinationZipCode,
	}
}

// StatusFor derives the delivery status from the expected and actual dates.
// The delay model only ever pushes the actual date later, so Early stays
// unreachable in generated data; the case is kept for completeness.
func StatusFor(expected, actual time.Time) string {
	switch {
	case actual.Before(expected):
		return StatusEarly
	case actual.Equal(expected):
		return StatusOnTime
	default:
		return StatusLate
	}
}

// ActualDeliveryDays is the span from order to delivery, in whole days.
func (r OrderRecord) ActualDeliveryDays() int {
	return int(r.ActualDeliveryDate.Sub(r.OrderDate).Hours() / 24)
}
