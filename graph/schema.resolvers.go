package graph

import (
	"context"

	"github.com/moviegraph/moviegraph/library"
)

type heroInput struct {
	Name string
	Age  int32
}

func (i heroInput) hero() library.Hero {
	return library.Hero{Name: i.Name, Age: int(i.Age)}
}

func (r *Resolver) Books(ctx context.Context) (*[]*bookResolver, error) {
	books, err := r.library.Books(ctx)

	if err != nil {
		return nil, wrapError(err)
	}

	resolvers := make([]*bookResolver, 0, len(books))

	for _, b := range books {
		resolvers = append(resolvers, &bookResolver{b})
	}

	return &resolvers, nil
}

func (r *Resolver) AllMovies(ctx context.Context) (*[]*movieResolver, error) {
	movies, err := r.library.AllMovies(ctx)

	if err != nil {
		return nil, wrapError(err)
	}

	return newMovieResolvers(movies), nil
}

func (r *Resolver) Movies(ctx context.Context, args struct{ HeroAge *int32 }) (*[]*movieResolver, error) {
	var heroAge *int

	if args.HeroAge != nil {
		age := int(*args.HeroAge)
		heroAge = &age
	}

	movies, err := r.library.Movies(ctx, heroAge)

	if err != nil {
		return nil, wrapError(err)
	}

	return newMovieResolvers(movies), nil
}

func (r *Resolver) AddHeroToMovie(ctx context.Context, args struct {
	MovieTitle string
	Hero       heroInput
}) (*movieResolver, error) {
	m, err := r.library.AddHeroToMovie(ctx, args.MovieTitle, args.Hero.hero())

	if err != nil {
		return nil, wrapError(err)
	}

	return &movieResolver{*m}, nil
}

func (r *Resolver) UpdateHeroInMovie(ctx context.Context, args struct {
	MovieTitle      string
	CurrentHeroName string
	NewHero         heroInput
}) (*movieResolver, error) {
	m, err := r.library.UpdateHeroInMovie(ctx, args.MovieTitle, args.CurrentHeroName, args.NewHero.hero())

	if err != nil {
		return nil, wrapError(err)
	}

	return &movieResolver{*m}, nil
}

func (r *Resolver) UpdateMovietitle(ctx context.Context, args struct {
	CurrentTitle string
	NewTitle     string
}) (*movieResolver, error) {
	m, err := r.library.UpdateMovieTitle(ctx, args.CurrentTitle, args.NewTitle)

	if err != nil {
		return nil, wrapError(err)
	}

	return &movieResolver{*m}, nil
}

type bookResolver struct {
	book library.Book
}

func (b *bookResolver) Title() *string {
	return &b.book.Title
}

func (b *bookResolver) Author() *string {
	return &b.book.Author
}

type heroResolver struct {
	hero library.Hero
}

func (h *heroResolver) Name() *string {
	return &h.hero.Name
}

func (h *heroResolver) Age() *int32 {
	age := int32(h.hero.Age)

	return &age
}

type movieResolver struct {
	movie library.Movie
}

func newMovieResolvers(movies []library.Movie) *[]*movieResolver {
	resolvers := make([]*movieResolver, 0, len(movies))

	for _, m := range movies {
		resolvers = append(resolvers, &movieResolver{m})
	}

	return &resolvers
}

func (m *movieResolver) Title() *string {
	return &m.movie.Title
}

func (m *movieResolver) Author() *string {
	return &m.movie.Author
}

// Heroes resolves to null when the movie never had a heroes list.
func (m *movieResolver) Heroes() *[]*heroResolver {
	if m.movie.Heroes == nil {
		return nil
	}

	resolvers := make([]*heroResolver, 0, len(m.movie.Heroes))

	for _, h := range m.movie.Heroes {
		resolvers = append(resolvers, &heroResolver{h})
	}

	return &resolvers
}
