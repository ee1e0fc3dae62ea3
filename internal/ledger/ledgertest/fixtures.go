package ledgertest

// Wire fixtures in the ledger's own shape: camelCase fields, tagged variants,
// and integers as decimal strings.

func Tag(name string) map[string]string {
	return map[string]string{"_tag": name}
}

func Product(id, artist, name, productType string) map[string]interface{} {
	return map[string]interface{}{
		"id":              id,
		"artist":          artist,
		"name":            name,
		"description":     name + " description",
		"price":           "2500",
		"inventory":       "10",
		"images":          []interface{}{map[string]string{"directUrl": "https://cdn.example/" + id + ".png"}},
		"productType":     Tag(productType),
		"mintCertificate": false,
		"attachNfcQrTag":  false,
	}
}

func Order(id, productID, status string, createdAt int64) map[string]interface{} {
	return map[string]interface{}{
		"id":        id,
		"buyer":     "buyer-1",
		"productId": productID,
		"quantity":  "1",
		"status":    Tag(status),
		"createdAt": createdAt,
		"updatedAt": createdAt,
	}
}

func Hub(id, name, status string) map[string]interface{} {
	return map[string]interface{}{
		"id":           id,
		"name":         name,
		"location":     []float64{40.7, -74.0},
		"capacity":     "500",
		"status":       Tag(status),
		"businessInfo": "LLC",
		"contactInfo":  "ops@" + id + ".example",
		"services":     "storage, shipping",
		"createdAt":    "1700000000000000000",
		"updatedAt":    "1700000000000000000",
	}
}

func InventoryItem(productID, hubID string, stock int64, status string) map[string]interface{} {
	return map[string]interface{}{
		"productId":   productID,
		"hubId":       hubID,
		"stock":       stock,
		"pending":     "0",
		"status":      Tag(status),
		"lastUpdated": "1700000000000000000",
	}
}

func Payment(id string, artist, hub, platform, total int64) map[string]interface{} {
	return map[string]interface{}{
		"id":             id,
		"orderId":        "order-" + id,
		"artistAmount":   artist,
		"hubAmount":      hub,
		"platformAmount": platform,
		"totalAmount":    total,
		"timestamp":      "1700000000000000000",
	}
}

func Tour(id, artist, status string) map[string]interface{} {
	return map[string]interface{}{
		"id":                    id,
		"artist":                artist,
		"venueName":             "Venue " + id,
		"tourType":              Tag("regularShow"),
		"status":                Tag(status),
		"location":              "Berlin",
		"date":                  "1700000000000000000",
		"ticketSales":           "120",
		"ticketSalesPercentage": 60.0,
		"merchRevenue":          "50000",
	}
}
