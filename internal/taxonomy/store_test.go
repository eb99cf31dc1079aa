package taxonomy_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zhukovg/energolog/internal/taxonomy"
)

func openTestStore(t *testing.T) (*taxonomy.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "categories.json")
	store, err := taxonomy.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return store, path
}

func TestOpenInitializesDefaultSkeleton(t *testing.T) {
	_, path := openTestStore(t)

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected taxonomy file to be created: %v", err)
	}

	store, err := taxonomy.Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}

	snapshot := store.Snapshot()
	if len(snapshot) != 6 {
		t.Fatalf("expected 6 default categories, got %d", len(snapshot))
	}
	if snapshot[0].Name != taxonomy.CategoryContexts {
		t.Errorf("expected %s first, got %s", taxonomy.CategoryContexts, snapshot[0].Name)
	}
}

func TestAddTag(t *testing.T) {
	store, path := openTestStore(t)

	added, err := store.AddTag(taxonomy.CategoryContexts, "работа")
	if err != nil {
		t.Fatalf("AddTag failed: %v", err)
	}
	if !added {
		t.Fatal("expected tag to be added")
	}

	// Duplicate is a no-op.
	added, err = store.AddTag(taxonomy.CategoryContexts, "работа")
	if err != nil {
		t.Fatalf("AddTag failed: %v", err)
	}
	if added {
		t.Error("expected duplicate tag to be rejected")
	}

	// Unknown category reports false, not an error.
	added, err = store.AddTag("НЕИЗВЕСТНО", "x")
	if err != nil {
		t.Fatalf("AddTag failed: %v", err)
	}
	if added {
		t.Error("expected unrecognized category to be rejected")
	}

	// Mutations persist: a fresh store sees the tag.
	reopened, err := taxonomy.Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	snapshot := reopened.Snapshot()
	if got := snapshot[0].Tags; len(got) != 1 || got[0] != "работа" {
		t.Errorf("expected persisted tag, got %v", got)
	}
}

func TestAddGroupTag(t *testing.T) {
	store, path := openTestStore(t)

	added, err := store.AddGroupTag(taxonomy.CategorySkills, "Базовые", "письмо")
	if err != nil {
		t.Fatalf("AddGroupTag failed: %v", err)
	}
	if !added {
		t.Fatal("expected tag to be added")
	}

	if added, _ := store.AddGroupTag(taxonomy.CategorySkills, "Нет такой", "x"); added {
		t.Error("expected unknown group to be rejected")
	}

	reopened, err := taxonomy.Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	skills := reopened.SkillTags()
	if len(skills) != 1 || skills[0] != "письмо" {
		t.Errorf("expected persisted skill tag, got %v", skills)
	}
}

func TestRoleTagsTraversalOrder(t *testing.T) {
	store, _ := openTestStore(t)

	// Groups are traversed in sorted order, tags in insertion order.
	store.AddGroupTag(taxonomy.CategoryRoles, "Экспертные", "инженер")
	store.AddGroupTag(taxonomy.CategoryRoles, "Образовательные", "наставник")
	store.AddGroupTag(taxonomy.CategoryRoles, "Экспертные", "аналитик")

	got := store.RoleTags()
	want := []string{"наставник", "инженер", "аналитик"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
