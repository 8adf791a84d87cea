// Package stats derives the dashboard analytics snapshot from raw order,
// customer and product collections. It performs no I/O: given its inputs
// and a reference time it is fully deterministic.
package stats

import (
	"fmt"
	"sort"
	"time"

	"wholesale-dashboard/internal/i18n"
	"wholesale-dashboard/internal/models"
)

const topListSize = 5

// Compute builds the DashboardStats snapshot for one tenant's data.
//
// totalSales sums every order regardless of status, so that totalSales,
// totalOrders and averageOrderValue agree with each other. Rankings and
// the category breakdown are keyed by product id; two products sharing a
// display name stay distinct, and a renamed product keeps its history.
func Compute(orders []models.Order, customers []models.Customer, products []models.Product, now time.Time, lang i18n.Language) models.DashboardStats {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var totalSales, salesToday float64
	var ordersToday, pendingOrders int
	for _, o := range orders {
		totalSales += o.Total
		if !o.CreatedAt.Before(startOfToday) {
			ordersToday++
			salesToday += o.Total
		}
		if o.Status == models.OrderStatusPending {
			pendingOrders++
		}
	}

	totalOrders := len(orders)
	averageOrderValue := 0.0
	if totalOrders > 0 {
		averageOrderValue = totalSales / float64(totalOrders)
	}

	activeCustomers := 0
	for _, c := range customers {
		if c.Segment != models.SegmentInactive {
			activeCustomers++
		}
	}

	return models.DashboardStats{
		TotalSales:        totalSales,
		TotalOrders:       totalOrders,
		ActiveCustomers:   activeCustomers,
		AverageOrderValue: averageOrderValue,
		OrdersToday:       ordersToday,
		SalesToday:        salesToday,
		PendingOrders:     pendingOrders,
		TopProducts:       topProducts(orders),
		TopCustomers:      topCustomers(orders),
		SalesByDay:        salesByDay(orders, now, lang),
		SalesByCategory:   salesByCategory(orders, products, lang),
		OrdersByStatus:    ordersByStatus(orders),
		OrdersBySource:    ordersBySource(orders),
	}
}

// topProducts ranks products by summed item revenue, descending, top 5.
func topProducts(orders []models.Order) []models.TopProduct {
	byID := make(map[string]*models.TopProduct)
	var keys []string
	for _, o := range orders {
		for _, item := range o.Items {
			entry, ok := byID[item.ProductID]
			if !ok {
				entry = &models.TopProduct{ProductID: item.ProductID, Name: item.ProductName}
				byID[item.ProductID] = entry
				keys = append(keys, item.ProductID)
			}
			entry.Quantity += item.Quantity
			entry.Revenue += item.Subtotal
		}
	}

	ranked := make([]models.TopProduct, 0, len(keys))
	for _, key := range keys {
		ranked = append(ranked, *byID[key])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue > ranked[j].Revenue
	})
	if len(ranked) > topListSize {
		ranked = ranked[:topListSize]
	}
	return ranked
}

// topCustomers ranks customers by summed order spend, descending, top 5.
// Orders carry a snapshotted customer name, which is the grouping key the
// dashboard displays.
func topCustomers(orders []models.Order) []models.TopCustomer {
	byName := make(map[string]*models.TopCustomer)
	var keys []string
	for _, o := range orders {
		entry, ok := byName[o.CustomerName]
		if !ok {
			entry = &models.TopCustomer{Name: o.CustomerName}
			byName[o.CustomerName] = entry
			keys = append(keys, o.CustomerName)
		}
		entry.Orders++
		entry.Spent += o.Total
	}

	ranked := make([]models.TopCustomer, 0, len(keys))
	for _, key := range keys {
		ranked = append(ranked, *byName[key])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Spent > ranked[j].Spent
	})
	if len(ranked) > topListSize {
		ranked = ranked[:topListSize]
	}
	return ranked
}

// salesByDay produces exactly seven points, oldest first, one per calendar
// day ending today. Orders outside a day's [midnight, midnight+24h) window
// do not count toward it.
func salesByDay(orders []models.Order, now time.Time, lang i18n.Language) []models.DayPoint {
	points := make([]models.DayPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -i)
		next := day.AddDate(0, 0, 1)

		point := models.DayPoint{
			Date: fmt.Sprintf("%s %d", i18n.ShortWeekday(lang, day.Weekday()), day.Day()),
		}
		for _, o := range orders {
			if !o.CreatedAt.Before(day) && o.CreatedAt.Before(next) {
				point.Sales += o.Total
				point.Orders++
			}
		}
		points = append(points, point)
	}
	return points
}

// salesByCategory attributes item revenue to the category of the item's
// product, resolved by product id against the current catalog. Items whose
// product is gone or uncategorized land in the localized "Other" bucket.
func salesByCategory(orders []models.Order, products []models.Product, lang i18n.Language) []models.CategorySales {
	categoryOf := make(map[string]string, len(products))
	for _, p := range products {
		categoryOf[p.ID] = p.Category
	}
	other := i18n.OtherCategory(lang)

	totals := make(map[string]float64)
	var keys []string
	for _, o := range orders {
		for _, item := range o.Items {
			category := categoryOf[item.ProductID]
			if category == "" {
				category = other
			}
			if _, ok := totals[category]; !ok {
				keys = append(keys, category)
			}
			totals[category] += item.Subtotal
		}
	}

	result := make([]models.CategorySales, 0, len(keys))
	for _, key := range keys {
		result = append(result, models.CategorySales{Category: key, Sales: totals[key]})
	}
	return result
}

// ordersByStatus counts orders per status, buckets in first-seen order.
func ordersByStatus(orders []models.Order) []models.StatusCount {
	counts := make(map[models.OrderStatus]int)
	var keys []models.OrderStatus
	for _, o := range orders {
		if _, ok := counts[o.Status]; !ok {
			keys = append(keys, o.Status)
		}
		counts[o.Status]++
	}

	result := make([]models.StatusCount, 0, len(keys))
	for _, key := range keys {
		result = append(result, models.StatusCount{Status: key, Count: counts[key]})
	}
	return result
}

// ordersBySource counts orders per source, buckets in first-seen order.
func ordersBySource(orders []models.Order) []models.SourceCount {
	counts := make(map[models.OrderSource]int)
	var keys []models.OrderSource
	for _, o := range orders {
		if _, ok := counts[o.Source]; !ok {
			keys = append(keys, o.Source)
		}
		counts[o.Source]++
	}

	result := make([]models.SourceCount, 0, len(keys))
	for _, key := range keys {
		result = append(result, models.SourceCount{Source: key, Count: counts[key]})
	}
	return result
}
