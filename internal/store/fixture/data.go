// internal/store/fixture/data.go
package fixture

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/souqhub/souq-backend/internal/models"
)

// Fixed identifiers so consumers and tests can reference sample records.
var (
	CategoryElectronicsID = uuid.MustParse("11111111-0000-0000-0000-000000000001")
	CategoryVehiclesID    = uuid.MustParse("11111111-0000-0000-0000-000000000002")
	CategoryRealEstateID  = uuid.MustParse("11111111-0000-0000-0000-000000000003")
	CategoryFurnitureID   = uuid.MustParse("11111111-0000-0000-0000-000000000004")
	CategoryJobsID        = uuid.MustParse("11111111-0000-0000-0000-000000000005")
	CategoryServicesID    = uuid.MustParse("11111111-0000-0000-0000-000000000006")
	CategoryFashionID     = uuid.MustParse("11111111-0000-0000-0000-000000000007")
	CategoryAnimalsID     = uuid.MustParse("11111111-0000-0000-0000-000000000008")

	UserAhmadID = uuid.MustParse("22222222-0000-0000-0000-000000000001")
	UserLaylaID = uuid.MustParse("22222222-0000-0000-0000-000000000002")
	UserOmarID  = uuid.MustParse("22222222-0000-0000-0000-000000000003")
	UserAdminID = uuid.MustParse("22222222-0000-0000-0000-000000000099")

	ListingIphoneID    = uuid.MustParse("33333333-0000-0000-0000-000000000001")
	ListingCarID       = uuid.MustParse("33333333-0000-0000-0000-000000000002")
	ListingFlatRentID  = uuid.MustParse("33333333-0000-0000-0000-000000000003")
	ListingFreeSofaID  = uuid.MustParse("33333333-0000-0000-0000-000000000004")
	ListingJobID       = uuid.MustParse("33333333-0000-0000-0000-000000000005")
	ListingServiceID   = uuid.MustParse("33333333-0000-0000-0000-000000000006")
	ListingLaptopID    = uuid.MustParse("33333333-0000-0000-0000-000000000007")
	ListingDressID     = uuid.MustParse("33333333-0000-0000-0000-000000000008")
	ListingParrotID    = uuid.MustParse("33333333-0000-0000-0000-000000000009")
	ListingLandID      = uuid.MustParse("33333333-0000-0000-0000-000000000010")
	ListingSoldTVID    = uuid.MustParse("33333333-0000-0000-0000-000000000011")
	ListingPendingPCID = uuid.MustParse("33333333-0000-0000-0000-000000000012")
)

// DemoPassword is the password every fixture user is seeded with.
const DemoPassword = "Souq123!Demo"

func seedCategories() []models.Category {
	mk := func(id uuid.UUID, slug, nameAr, nameEn, icon, color string, order int) models.Category {
		return models.Category{
			BaseModel: models.BaseModel{ID: id},
			Slug:      slug,
			NameAr:    nameAr,
			NameEn:    nameEn,
			Icon:      icon,
			Color:     color,
			SortOrder: order,
			IsActive:  true,
		}
	}

	categories := []models.Category{
		mk(CategoryElectronicsID, "electronics", "إلكترونيات", "Electronics", "smartphone", "#2563eb", 1),
		mk(CategoryVehiclesID, "vehicles", "مركبات", "Vehicles", "car", "#dc2626", 2),
		mk(CategoryRealEstateID, "real-estate", "عقارات", "Real Estate", "home", "#16a34a", 3),
		mk(CategoryFurnitureID, "furniture", "أثاث", "Furniture", "armchair", "#d97706", 4),
		mk(CategoryJobsID, "jobs", "وظائف", "Jobs", "briefcase", "#7c3aed", 5),
		mk(CategoryServicesID, "services", "خدمات", "Services", "wrench", "#0891b2", 6),
		mk(CategoryFashionID, "fashion", "أزياء", "Fashion", "shirt", "#db2777", 7),
		mk(CategoryAnimalsID, "animals", "حيوانات", "Animals", "paw-print", "#65a30d", 8),
	}

	// Retired category: kept for history, never shown.
	retired := mk(uuid.MustParse("11111111-0000-0000-0000-000000000099"),
		"antiques", "تحف وأنتيكا", "Antiques", "lamp", "#78716c", 99)
	retired.IsActive = false
	categories = append(categories, retired)

	return categories
}

func seedUsers() []models.User {
	mk := func(id uuid.UUID, username, email, phone, city string, region models.Region, userType models.UserType) models.User {
		u := models.User{
			BaseModel: models.BaseModel{ID: id, CreatedAt: time.Now().AddDate(0, -6, 0)},
			Username:  username,
			Email:     email,
			Phone:     phone,
			City:      city,
			Region:    region,
			UserType:  userType,
			Status:    models.UserStatusActive,
		}
		_ = u.SetPassword(DemoPassword)
		return u
	}

	return []models.User{
		mk(UserAhmadID, "ahmad_k", "ahmad@example.com", "0599123456", "رام الله", models.RegionRamallah, models.UserTypeMember),
		mk(UserLaylaID, "layla_n", "layla@example.com", "0598765432", "نابلس", models.RegionNablus, models.UserTypeMember),
		mk(UserOmarID, "omar_g", "omar@example.com", "0597001122", "غزة", models.RegionGaza, models.UserTypeMember),
		mk(UserAdminID, "admin", "admin@souqhub.ps", "0590000000", "رام الله", models.RegionRamallah, models.UserTypeAdmin),
	}
}

func seedListings() []models.Listing {
	now := time.Now()
	expiry := now.AddDate(0, 0, 30)
	price := func(v float64) *float64 { return &v }

	mk := func(id uuid.UUID, age time.Duration, owner, category uuid.UUID, title, description string) models.Listing {
		createdAt := now.Add(-age)
		return models.Listing{
			BaseModel:   models.BaseModel{ID: id, CreatedAt: createdAt, UpdatedAt: createdAt},
			OwnerID:     owner,
			CategoryID:  category,
			Title:       title,
			Description: description,
			Status:      models.ListingStatusActive,
			Currency:    models.CurrencyILS,
			ExpiresAt:   &expiry,
		}
	}

	iphone := mk(ListingIphoneID, 1*time.Hour, UserAhmadID, CategoryElectronicsID,
		"آيفون 13", "iPhone 13 Pro 256GB لون أزرق، بحالة ممتازة مع الكرتونة والشاحن الأصلي")
	iphone.AdType = models.AdTypeSell
	iphone.Condition = models.ConditionLikeNew
	iphone.PriceType = models.PriceTypeNegotiable
	iphone.Price = price(2400)
	iphone.City = "رام الله"
	iphone.Region = models.RegionRamallah
	iphone.IsFeatured = true
	iphone.Tags = pq.StringArray{"موبايل", "ابل", "iphone"}
	iphone.ViewsCount = 340
	iphone.FavoritesCount = 12
	iphone.Images = []models.ListingImage{
		{BaseModel: models.BaseModel{ID: uuid.MustParse("44444444-0000-0000-0000-000000000001")}, ListingID: ListingIphoneID, URL: "https://cdn.souqhub.ps/listings/iphone13-1.jpg", IsPrimary: true, SortOrder: 0},
		{BaseModel: models.BaseModel{ID: uuid.MustParse("44444444-0000-0000-0000-000000000002")}, ListingID: ListingIphoneID, URL: "https://cdn.souqhub.ps/listings/iphone13-2.jpg", SortOrder: 1},
	}

	car := mk(ListingCarID, 3*time.Hour, UserLaylaID, CategoryVehiclesID,
		"هيونداي افانتي 2018", "سيارة هيونداي افانتي موديل 2018، فحص كامل، قطعت 85 ألف كم")
	car.AdType = models.AdTypeSell
	car.Condition = models.ConditionGood
	car.PriceType = models.PriceTypeFixed
	car.Price = price(78000)
	car.City = "نابلس"
	car.Region = models.RegionNablus
	car.IsUrgent = true
	car.ViewsCount = 890
	car.FavoritesCount = 31

	flat := mk(ListingFlatRentID, 6*time.Hour, UserAhmadID, CategoryRealEstateID,
		"شقة للإيجار في البيرة", "شقة 3 غرف نوم وصالة، طابق ثاني مع مصعد، قرب دوار الساعة")
	flat.AdType = models.AdTypeRent
	flat.PriceType = models.PriceTypeFixed
	flat.Price = price(450)
	flat.Currency = models.CurrencyUSD
	flat.City = "البيرة"
	flat.Region = models.RegionRamallah
	flat.ViewsCount = 221
	flat.FavoritesCount = 8

	sofa := mk(ListingFreeSofaID, 12*time.Hour, UserOmarID, CategoryFurnitureID,
		"كنباية مجاناً", "كنباية مستعملة بحالة جيدة، مجاناً لمن يستطيع نقلها")
	sofa.AdType = models.AdTypeSell
	sofa.Condition = models.ConditionAcceptable
	sofa.PriceType = models.PriceTypeFree
	sofa.City = "غزة"
	sofa.Region = models.RegionGaza
	sofa.ViewsCount = 75

	job := mk(ListingJobID, 24*time.Hour, UserLaylaID, CategoryJobsID,
		"مطلوب مطور ويب", "شركة ناشئة في نابلس بحاجة لمطور React و Node.js بخبرة سنتين")
	job.AdType = models.AdTypeJob
	job.PriceType = models.PriceTypeContact
	job.City = "نابلس"
	job.Region = models.RegionNablus
	job.ViewsCount = 412

	service := mk(ListingServiceID, 30*time.Hour, UserOmarID, CategoryServicesID,
		"خدمات نقل عفش", "نقل أثاث داخل قطاع غزة مع عمال تحميل وتنزيل")
	service.AdType = models.AdTypeService
	service.PriceType = models.PriceTypeContact
	service.City = "غزة"
	service.Region = models.RegionGaza
	service.ViewsCount = 154

	laptop := mk(ListingLaptopID, 2*24*time.Hour, UserLaylaID, CategoryElectronicsID,
		"لابتوب Dell XPS 15", "Dell XPS 15 9510, i7-11800H, 16GB RAM, RTX 3050Ti، استعمال خفيف")
	laptop.AdType = models.AdTypeSell
	laptop.Condition = models.ConditionLikeNew
	laptop.PriceType = models.PriceTypeNegotiable
	laptop.Price = price(950)
	laptop.Currency = models.CurrencyUSD
	laptop.City = "نابلس"
	laptop.Region = models.RegionNablus
	laptop.ViewsCount = 267
	laptop.FavoritesCount = 9

	dress := mk(ListingDressID, 3*24*time.Hour, UserLaylaID, CategoryFashionID,
		"ثوب فلسطيني مطرز", "ثوب مطرز يدوياً تطريز فلاحي أصلي، مقاس وسط")
	dress.AdType = models.AdTypeSell
	dress.Condition = models.ConditionNew
	dress.PriceType = models.PriceTypeFixed
	dress.Price = price(350)
	dress.City = "بيت لحم"
	dress.Region = models.RegionBethlehem
	dress.ViewsCount = 98
	dress.FavoritesCount = 15

	parrot := mk(ListingParrotID, 4*24*time.Hour, UserAhmadID, CategoryAnimalsID,
		"ببغاء كوكتيل مع القفص", "ببغاء كوكتيل أليف عمره سنة، مع القفص والأغراض كاملة")
	parrot.AdType = models.AdTypeSell
	parrot.Condition = models.ConditionGood
	parrot.PriceType = models.PriceTypeFixed
	parrot.Price = price(250)
	parrot.City = "رام الله"
	parrot.Region = models.RegionRamallah
	parrot.ViewsCount = 66

	land := mk(ListingLandID, 5*24*time.Hour, UserAhmadID, CategoryRealEstateID,
		"قطعة أرض في بيرزيت", "أرض مساحتها دونم ونصف، طابو، على شارع رئيسي")
	land.AdType = models.AdTypeSell
	land.PriceType = models.PriceTypeNegotiable
	land.Price = price(95000)
	land.Currency = models.CurrencyJOD
	land.City = "بيرزيت"
	land.Region = models.RegionRamallah
	land.IsFeatured = true
	land.ViewsCount = 503
	land.FavoritesCount = 22

	soldTV := mk(ListingSoldTVID, 6*24*time.Hour, UserOmarID, CategoryElectronicsID,
		"شاشة سامسونج 55 انش", "شاشة سمارت 4K بحالة الوكالة")
	soldTV.AdType = models.AdTypeSell
	soldTV.Condition = models.ConditionGood
	soldTV.PriceType = models.PriceTypeFixed
	soldTV.Price = price(1400)
	soldTV.City = "غزة"
	soldTV.Region = models.RegionGaza
	soldTV.Status = models.ListingStatusSold

	pendingPC := mk(ListingPendingPCID, 10*time.Minute, UserOmarID, CategoryElectronicsID,
		"كمبيوتر مكتبي للألعاب", "PC gaming: Ryzen 5 5600, RTX 3060, 32GB RAM")
	pendingPC.AdType = models.AdTypeSell
	pendingPC.Condition = models.ConditionGood
	pendingPC.PriceType = models.PriceTypeNegotiable
	pendingPC.Price = price(2800)
	pendingPC.City = "خانيونس"
	pendingPC.Region = models.RegionKhanYounis
	pendingPC.Status = models.ListingStatusPending

	return []models.Listing{
		iphone, car, flat, sofa, job, service,
		laptop, dress, parrot, land, soldTV, pendingPC,
	}
}
