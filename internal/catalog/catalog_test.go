package catalog

import (
	"testing"

	"list-market/internal/domain"
)

func testCatalog() Catalog {
	return New([]domain.Product{
		{ID: 1, Name: "Стол", Price: 100, Category: "Мебель"},
		{ID: 2, Name: "Стул", Price: 50, Category: "Мебель"},
		{ID: 3, Name: "Торт", Price: 30, Category: "Сладости", Description: "шоколадный"},
	})
}

func TestListFiltersByCategory(t *testing.T) {
	c := testCatalog()

	if got := len(c.List("")); got != 3 {
		t.Errorf("List(\"\") returned %d products, want 3", got)
	}
	if got := len(c.List(CategoryAll)); got != 3 {
		t.Errorf("List(all) returned %d products, want 3", got)
	}
	if got := len(c.List("Мебель")); got != 2 {
		t.Errorf("List(Мебель) returned %d products, want 2", got)
	}
	if got := len(c.List("Нет такой")); got != 0 {
		t.Errorf("List(unknown) returned %d products, want 0", got)
	}
}

func TestFindByID(t *testing.T) {
	c := testCatalog()

	p, err := c.FindByID(2)
	if err != nil {
		t.Fatalf("FindByID(2) returned error: %v", err)
	}
	if p.Name != "Стул" {
		t.Errorf("FindByID(2) = %q, want Стул", p.Name)
	}

	if _, err := c.FindByID(99); err != ErrProductNotFound {
		t.Errorf("FindByID(99) error = %v, want ErrProductNotFound", err)
	}
}

func TestCategoriesOrder(t *testing.T) {
	c := testCatalog()

	got := c.Categories()
	want := []string{CategoryAll, "Мебель", "Сладости"}
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	c := testCatalog()

	if got := len(c.Search("стол")); got != 1 {
		t.Errorf("Search(стол) returned %d products, want 1", got)
	}
	if got := len(c.Search("ШОКОЛАД")); got != 1 {
		t.Errorf("Search over description returned %d products, want 1", got)
	}
	if got := len(c.Search("   ")); got != 3 {
		t.Errorf("blank Search returned %d products, want all 3", got)
	}
	if got := len(c.Search("пицца")); got != 0 {
		t.Errorf("Search(no match) returned %d products, want 0", got)
	}
}

func TestDefaultCatalogIsComplete(t *testing.T) {
	c := Default()

	if got := len(c.List("")); got != 8 {
		t.Fatalf("default catalog has %d products, want 8", got)
	}

	sofa, err := c.FindByID(1)
	if err != nil {
		t.Fatalf("FindByID(1): %v", err)
	}
	if sofa.Price != 45000 {
		t.Errorf("sofa price = %d, want 45000", sofa.Price)
	}

	cats := c.Categories()
	if len(cats) != 5 {
		t.Errorf("default catalog has %d categories, want 5 (incl. %s)", len(cats), CategoryAll)
	}
}
