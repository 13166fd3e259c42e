package library

// SeedBooks returns a fresh copy of the books every store starts with.
func SeedBooks() []Book {
	return []Book{
		{Title: "The Awakening", Author: "Kate Chopin"},
		{Title: "City of Glass", Author: "Paul Auster"},
		{Title: "Twilight", Author: "Stephanie Meyer"},
		{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald"},
	}
}

// SeedMovies returns a fresh copy of the movies every store starts with.
func SeedMovies() []Movie {
	return []Movie{
		{
			Title:  "Star Wars",
			Heroes: []Hero{{Name: "Luke Skywalker", Age: 25}},
			Author: "George Lucas",
		},
		{
			Title:  "Asoka",
			Heroes: []Hero{{Name: "Ahsoka Tano", Age: 17}},
			Author: "George Lucas",
		},
		{
			Title:  "Mandalorian",
			Heroes: []Hero{{Name: "Din Djarin", Age: 36}},
			Author: "George Lucas",
		},
		{
			Title:  "Spider-Man",
			Heroes: []Hero{{Name: "Peter Parker", Age: 17}},
			Author: "Sam Raimi",
		},
		{
			Title:  "The Notebook",
			Heroes: []Hero{{Name: "Noah Calhoun", Age: 17}},
			Author: "Nicholas Sparks",
		},
		{
			Title:  "Shrek",
			Heroes: []Hero{{Name: "Princess Fiona", Age: 30}},
			Author: "William Steig",
		},
	}
}
