package store

import (
	"errors"

	"github.com/abequinonez/udacity-item-catalog/models"
)

// The fixed cuisine categories. Seeded once; no route creates, edits, or
// deletes a category.
var categoryNames = []string{
	"Chinese",
	"Japanese",
	"Korean",
	"Thai",
	"Vietnamese",
	"Other",
}

const sampleUserEmail = "roboadmin@email.com"

// SeedCategories inserts the fixed category set if the table is empty.
func (s *Store) SeedCategories() error {
	var count int64
	if err := s.db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, name := range categoryNames {
		if err := s.db.Create(&models.Category{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedSampleData adds a sample user and a handful of noodle dishes for
// demos. Skipped when the sample user already exists.
func (s *Store) SeedSampleData() error {
	_, err := s.UserByEmail(sampleUserEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	admin := models.User{
		Name:    "Robo Admin",
		Email:   sampleUserEmail,
		Picture: "https://pbs.twimg.com/profile_images/2671170543/18debd694829ed78203a5a36dd364160_400x400.png",
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	for _, item := range sampleItems() {
		item.UserID = admin.ID
		if err := s.db.Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}

func sampleItems() []models.Item {
	return []models.Item{
		{
			CatID: 1,
			Name:  "Wonton Noodles",
			Description: "Wonton noodles is a Cantonese noodle dish which is popular in Guangzhou, " +
				"Hong Kong, Malaysia, Singapore and Thailand. The dish is usually served in a hot " +
				"broth, garnished with leafy vegetables and wonton dumplings.",
			ImageURL: "https://steamykitchen.com/wp-content/uploads/2008/08/image_2144web2.jpg",
		},
		{
			CatID: 2,
			Name:  "Udon",
			Description: "Udon is a type of thick wheat flour noodle of Japanese cuisine. Udon is " +
				"often served hot as a noodle soup in its simplest form, as kake udon, in a mildly " +
				"flavoured broth called kakejiru, which is made of dashi, soy sauce, and mirin.",
			ImageURL: "https://japancentre-images.freetls.fastly.net/recipes/pics/733/main/733-udon-noodles.jpg",
		},
		{
			CatID: 3,
			Name:  "Janchi Guksu",
			Description: "Janchi-guksu or banquet noodles is a Korean noodle dish consisting of " +
				"wheat flour noodles in a light broth made from anchovy and sometimes also dasima.",
			ImageURL: "http://www.futuredish.com/wp-content/uploads/2017/02/Janchi-Guksu.png",
		},
		{
			CatID: 4,
			Name:  "Boat Noodles",
			Description: "Boat noodles or kuaitiao ruea is a Thai style noodle dish, which has a " +
				"strong flavor. It contains both pork and beef, as well as dark soy sauce, pickled " +
				"bean curd and some other spices, and is normally served with meatballs.",
			ImageURL: "https://www.saveur.com/sites/saveur.com/files/styles/medium_1x_/public/thaiboatnoodlesoup_2000x1500.jpg",
		},
		{
			CatID: 5,
			Name:  "Pho",
			Description: "Pho is a Vietnamese noodle soup consisting of broth, rice noodles called " +
				"banh pho, a few herbs, and meat, primarily made with either beef or chicken. Pho " +
				"is a popular street food in Vietnam.",
			ImageURL: "https://d1doqjmisr497k.cloudfront.net/-/media/mccormick-us/recipes/kitchen-basics/v/800/vietnamese_beef_noodle_soup.ashx",
		},
		{
			CatID: 6,
			Name:  "Hae Mee",
			Description: "Hae mee (also called prawn mee) is a noodle soup dish popular in Malaysia " +
				"and Singapore. Egg noodles are served in richly flavoured dark soup stock with " +
				"prawns, pork slices, fish cake slices and bean sprouts.",
			ImageURL: "https://i1.wp.com/angsarap.net/wp-content/uploads/2014/12/Penang-Prawn-Mee-Wide.jpg",
		},
		{
			CatID: 2,
			Name:  "Pork Ramen",
			Description: "Ramen noodles served in chicken broth and topped with braised boneless " +
				"pork. Additional toppings include eggs, green onions, and garlic cloves.",
			ImageURL: "https://www.williams-sonoma.com/wsimgs/rk/images/dp/recipe/201707/0063/img97l.jpg",
		},
		{
			CatID: 6,
			Name:  "Chicken Curry Laksa",
			Description: "Egg noodles served in a spicy coconut-based curry soup and topped with " +
				"chicken. Other toppings include eggplant, bean sprouts, and tofu puffs.",
			ImageURL: "https://i2.wp.com/themacadames.com/wp-content/uploads/2014/07/Laksa-Lead-image.jpg",
		},
	}
}
