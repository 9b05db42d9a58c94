package tools

import (
	"github.com/kopichat-core-poc/server/internal/agent/model"
)

// DefaultCatalog seeds the drinkware catalog. Entries mirror the shape of the
// scraped storefront feed (title, display price, description).
var DefaultCatalog = []model.Product{
	{
		Title:       "ZUS OG Cup 2.0 With Screw-On Lid 500ml",
		Category:    "tumbler",
		Price:       "RM 79.00",
		Description: "Double-wall stainless steel tumbler with a leak-proof screw-on lid, keeps drinks cold for 12 hours",
	},
	{
		Title:       "ZUS All-Day Cup 500ml (Aqua)",
		Category:    "tumbler",
		Price:       "RM 55.00",
		Description: "Lightweight everyday tumbler with flip lid, fits standard car cup holders",
	},
	{
		Title:       "ZUS Frozee Cold Cup 650ml",
		Category:    "cup",
		Price:       "RM 45.00",
		Description: "Transparent double-wall cold cup with straw for iced drinks and frozee blends",
	},
	{
		Title:       "ZUS Ceramic Mug 350ml",
		Category:    "mug",
		Price:       "RM 39.00",
		Description: "Matte ceramic mug for home or office brews, dishwasher safe",
	},
	{
		Title:       "ZUS Stainless Steel Bottle 750ml",
		Category:    "bottle",
		Price:       "RM 89.00",
		Description: "Vacuum-insulated sports bottle, keeps water cold for 24 hours",
	},
	{
		Title:       "ZUS Glass Can 475ml",
		Category:    "cup",
		Price:       "RM 35.00",
		Description: "Borosilicate glass can with bamboo lid for hot and cold drinks",
	},
}

// DefaultOutlets seeds the store directory for the Klang Valley pilot area.
// Rows follow the ingested outlet CSV schema.
var DefaultOutlets = []model.Outlet{
	{
		Name:         "SS 2",
		Address:      "9, Jalan SS 2/67, SS 2, 47300 Petaling Jaya, Selangor",
		OpeningHours: "8:00AM - 10:00PM",
		Services:     "Dine-in, Takeaway, Delivery",
	},
	{
		Name:         "Bangsar",
		Address:      "1, Jalan Telawi 5, Bangsar, 59100 Kuala Lumpur",
		OpeningHours: "7:30AM - 11:00PM",
		Services:     "Dine-in, Takeaway",
	},
	{
		Name:         "Subang",
		Address:      "3, Jalan SS 15/4d, SS 15, 47500 Subang Jaya, Selangor",
		OpeningHours: "8:00AM - 10:00PM",
		Services:     "Dine-in, Takeaway, Delivery",
	},
	{
		Name:         "Damansara Utama",
		Address:      "21, Jalan SS 21/39, Damansara Utama, 47400 Petaling Jaya, Selangor",
		OpeningHours: "9:00AM - 9:00PM",
	},
	{
		Name:         "Kuala Lumpur City Centre",
		Address:      "Lot G-23, Jalan Ampang, 50088 Kuala Lumpur",
		OpeningHours: "8:00AM - 10:00PM",
		Services:     "Dine-in, Takeaway",
	},
}
