package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/BMSaiko/FoodLister-sub003/pkg/adapters/repository/sqlite"
	"github.com/BMSaiko/FoodLister-sub003/pkg/core/domain"
)

func newRepo(t *testing.T) *sqlite.SQLiteRepository {
	t.Helper()
	repo, err := sqlite.NewSQLiteRepository("file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Failed to init db: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestCreateRestaurantFromMapsLink(t *testing.T) {
	svc := NewRestaurantService(newRepo(t))
	ctx := context.Background()

	tests := []struct {
		name     string
		in       domain.RestaurantInput
		wantName string
		wantLoc  string
		wantAddr string
		wantLat  float64
		hasCoord bool
	}{
		{
			name:     "place link fills name and coordinates",
			in:       domain.RestaurantInput{MapsURL: "https://www.google.com/maps/place/Restaurante+Bella+Italia/@41.3851,2.1734,15z"},
			wantName: "Restaurante Bella Italia",
			wantLoc:  "41.3851, 2.1734",
			wantLat:  41.3851,
			hasCoord: true,
		},
		{
			name:     "typed name wins over link name",
			in:       domain.RestaurantInput{Name: "Bella", MapsURL: "https://www.google.com/maps/place/Restaurante+Bella+Italia/@41.3851,2.1734,15z"},
			wantName: "Bella",
			wantLoc:  "41.3851, 2.1734",
			wantLat:  41.3851,
			hasCoord: true,
		},
		{
			name:     "query link fills address",
			in:       domain.RestaurantInput{Name: "Pizza", MapsURL: "https://www.google.com/maps?q=Pizza+Place+Barcelona"},
			wantName: "Pizza",
			wantLoc:  "Pizza Place Barcelona",
			wantAddr: "Pizza Place Barcelona",
		},
		{
			name:     "typed location kept",
			in:       domain.RestaurantInput{Name: "Spot", Location: "Gracia", MapsURL: "https://www.google.com/maps/@41.4036,2.1744,17z"},
			wantName: "Spot",
			wantLoc:  "Gracia",
			wantLat:  41.4036,
			hasCoord: true,
		},
		{
			name:     "no link",
			in:       domain.RestaurantInput{Name: "Plain", Location: "Somewhere"},
			wantName: "Plain",
			wantLoc:  "Somewhere",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := svc.Create(ctx, "alice", tt.in)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if r.Name != tt.wantName || r.Location != tt.wantLoc || r.Address != tt.wantAddr {
				t.Errorf("got name=%q loc=%q addr=%q", r.Name, r.Location, r.Address)
			}
			if (r.Latitude != nil) != tt.hasCoord {
				t.Fatalf("latitude presence = %v, want %v", r.Latitude != nil, tt.hasCoord)
			}
			if tt.hasCoord && *r.Latitude != tt.wantLat {
				t.Errorf("latitude = %v, want %v", *r.Latitude, tt.wantLat)
			}
			if r.CreatedBy != "alice" || r.ID == 0 {
				t.Errorf("unexpected owner/id %q/%d", r.CreatedBy, r.ID)
			}
		})
	}
}

func TestCreateRestaurantRejects(t *testing.T) {
	svc := NewRestaurantService(newRepo(t))
	ctx := context.Background()

	inputs := []domain.RestaurantInput{
		{},
		{Name: "X", MapsURL: "https://example.com/maps/place/X/@1,2,3z"},
		{MapsURL: "https://www.google.com/maps/dir/"},
		{MapsURL: "https://www.google.com/maps/@12.5,190.2,15z", Name: "Far away"},
	}
	for _, in := range inputs {
		if _, err := svc.Create(ctx, "alice", in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Create(%+v) err = %v, want ErrInvalidInput", in, err)
		}
	}
}

func TestCreateRestaurantConvertsImgur(t *testing.T) {
	svc := NewRestaurantService(newRepo(t))

	r, err := svc.Create(context.Background(), "alice", domain.RestaurantInput{
		Name:     "Pic",
		ImageURL: "https://imgur.com/a/ABC123#XYZ9",
	})
	if err != nil {
		t.Fatal(err)
	}
	if r.ImageURL != "https://i.imgur.com/XYZ9l.jpg" {
		t.Errorf("ImageURL = %q", r.ImageURL)
	}

	r, err = svc.Create(context.Background(), "alice", domain.RestaurantInput{
		Name:     "Other",
		ImageURL: "https://cdn.example.com/pic.jpg",
	})
	if err != nil {
		t.Fatal(err)
	}
	if r.ImageURL != "https://cdn.example.com/pic.jpg" {
		t.Errorf("non imgur image rewritten to %q", r.ImageURL)
	}
}

func TestUpdateRestaurantReplacesDerivedFields(t *testing.T) {
	svc := NewRestaurantService(newRepo(t))
	ctx := context.Background()

	r, err := svc.Create(ctx, "alice", domain.RestaurantInput{
		MapsURL: "https://www.google.com/maps/place/Old+Spot/@41.1,2.1,15z",
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Update(ctx, "bob", r.ID, domain.RestaurantInput{Name: "Hijack"}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("update by other user err = %v, want ErrForbidden", err)
	}

	updated, err := svc.Update(ctx, "alice", r.ID, domain.RestaurantInput{
		MapsURL: "https://www.google.com/maps?q=Carrer+de+Blai+Barcelona",
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Old Spot" {
		t.Errorf("name changed to %q", updated.Name)
	}
	if updated.Latitude != nil || updated.Address != "Carrer de Blai Barcelona" || updated.Location != "Carrer de Blai Barcelona" {
		t.Errorf("derived fields not replaced: %+v", updated)
	}

	// A location the user typed survives another link change
	if _, err := svc.Update(ctx, "alice", r.ID, domain.RestaurantInput{Location: "Poble Sec, upstairs"}); err != nil {
		t.Fatal(err)
	}
	typed, err := svc.Update(ctx, "alice", r.ID, domain.RestaurantInput{
		MapsURL: "https://www.google.com/maps/@41.37,2.16,17z",
	})
	if err != nil {
		t.Fatal(err)
	}
	if typed.Location != "Poble Sec, upstairs" {
		t.Errorf("typed location replaced with %q", typed.Location)
	}
	if typed.Address != "" {
		t.Errorf("address from the old link kept: %q", typed.Address)
	}
	if !(typed.Latitude != nil && *typed.Latitude == 41.37) {
		t.Errorf("coordinates not taken from the new link: %+v", typed)
	}

	if err := svc.Delete(ctx, "bob", r.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("delete by other user err = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, "alice", r.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(ctx, r.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("get after delete err = %v, want ErrNotFound", err)
	}
}

func TestPreviewLinksTrimsInput(t *testing.T) {
	svc := NewRestaurantService(nil)
	n := svc.PreviewLinks("  https://www.google.com/maps/@41.3851,2.1734,17z\n", " https://imgur.com/ABC123 ")
	if n.Place == nil || n.Place.Location == nil || *n.Place.Location != "41.3851, 2.1734" {
		t.Errorf("unexpected place %+v", n.Place)
	}
	if n.ImageURL != "https://i.imgur.com/ABC123l.jpg" {
		t.Errorf("ImageURL = %q", n.ImageURL)
	}
}

func TestListService(t *testing.T) {
	repo := newRepo(t)
	rs := NewRestaurantService(repo)
	ls := NewListService(repo)
	ctx := context.Background()

	a, _ := rs.Create(ctx, "alice", domain.RestaurantInput{Name: "A"})
	b, _ := rs.Create(ctx, "alice", domain.RestaurantInput{Name: "B"})

	list, err := ls.CreateList(ctx, "alice", "Date Night!", "", "", false)
	if err != nil {
		t.Fatal(err)
	}
	if list.Slug != "date-night" {
		t.Errorf("slug = %q, want date-night", list.Slug)
	}
	if _, err := ls.CreateList(ctx, "bob", "x", "Date-Night", "", true); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("duplicate slug err = %v, want ErrConflict", err)
	}
	if _, err := ls.CreateList(ctx, "bob", "x", "bad slug!", "", true); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("bad slug err = %v, want ErrInvalidInput", err)
	}

	for _, id := range []int64{a.ID, b.ID} {
		if err := ls.AddRestaurant(ctx, "alice", list.ID, id); err != nil {
			t.Fatal(err)
		}
	}
	if err := ls.AddRestaurant(ctx, "bob", list.ID, a.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("add by other user err = %v, want ErrForbidden", err)
	}
	if err := ls.AddRestaurant(ctx, "alice", list.ID, 9999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("add missing restaurant err = %v, want ErrNotFound", err)
	}

	if err := ls.ReorderRestaurants(ctx, "alice", list.ID, []int64{b.ID, a.ID}); err != nil {
		t.Fatal(err)
	}
	got, err := ls.GetList(ctx, "alice", list.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Restaurants) != 2 || got.Restaurants[0].Name != "B" {
		t.Errorf("unexpected order %+v", got.Restaurants)
	}
	if err := ls.ReorderRestaurants(ctx, "alice", list.ID, []int64{a.ID, 424242}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("reorder with a restaurant not on the list err = %v, want ErrInvalidInput", err)
	}

	// Private lists stay hidden from others
	if _, err := ls.GetList(ctx, "bob", list.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("private list for bob err = %v, want ErrNotFound", err)
	}
	if _, err := ls.GetPublicList(ctx, "date-night"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("private list by slug err = %v, want ErrNotFound", err)
	}

	if _, err := ls.UpdateList(ctx, "alice", list.ID, "Date Night", "", "", true); err != nil {
		t.Fatal(err)
	}
	if pub, err := ls.GetPublicList(ctx, "date-night"); err != nil || len(pub.Restaurants) != 2 {
		t.Errorf("public list = %+v, %v", pub, err)
	}

	mine, err := ls.ListLists(ctx, "alice", 1, 10, "")
	if err != nil || len(mine) != 1 {
		t.Errorf("ListLists = %d, %v", len(mine), err)
	}

	if err := ls.DeleteList(ctx, "bob", list.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("delete by other user err = %v, want ErrForbidden", err)
	}
	if err := ls.DeleteList(ctx, "alice", list.ID); err != nil {
		t.Fatal(err)
	}
}

func TestVisitService(t *testing.T) {
	repo := newRepo(t)
	rs := NewRestaurantService(repo)
	vs := NewVisitService(repo)
	ctx := context.Background()

	r, _ := rs.Create(ctx, "alice", domain.RestaurantInput{Name: "Cafe"})

	if _, err := vs.RecordVisit(ctx, "bob", 4242, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("visit of missing restaurant err = %v, want ErrNotFound", err)
	}
	v, err := vs.RecordVisit(ctx, "bob", r.ID, "  great coffee ")
	if err != nil {
		t.Fatal(err)
	}
	if v.Note != "great coffee" {
		t.Errorf("note = %q", v.Note)
	}

	summary, err := vs.Summary(ctx, "bob", r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if summary.TotalVisits != 1 || !summary.Visited {
		t.Errorf("unexpected summary %+v", summary)
	}

	visits, err := vs.ListVisits(ctx, "bob", 1, 10)
	if err != nil || len(visits) != 1 {
		t.Errorf("ListVisits = %d, %v", len(visits), err)
	}
}
