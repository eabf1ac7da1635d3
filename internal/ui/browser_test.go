package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kirksw/ezorg/internal/github"
)

func testRepos() []github.Repo {
	return []github.Repo{
		{Name: "dagger", FullName: "google/dagger", License: "apache-2.0", Description: "Dependency injection"},
		{Name: "cpp-netlib", FullName: "google/cpp-netlib", License: "bsl-1.0"},
		{Name: "kratu", FullName: "google/kratu", License: "apache-2.0"},
		{Name: "build-debian-cloud", FullName: "google/build-debian-cloud"},
	}
}

func itemNames(m model) []string {
	var names []string
	for _, item := range m.repoList.Items() {
		names = append(names, item.(repoItem).Name)
	}
	return names
}

func TestLicenseFilterStartsOnAndTabToggles(t *testing.T) {
	m := newModel("google", testRepos(), "apache-2.0")

	if !m.licenseFilter {
		t.Fatal("licenseFilter should start true when a license is given")
	}
	if got := itemNames(m); strings.Join(got, ",") != "dagger,kratu" {
		t.Fatalf("items = %v, want [dagger kratu]", got)
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(model)

	if m.licenseFilter {
		t.Fatal("licenseFilter should be false after Tab")
	}
	if len(m.repoList.Items()) != 4 {
		t.Fatalf("expected 4 items without filter, got %d", len(m.repoList.Items()))
	}
}

func TestTabIgnoredWithoutLicense(t *testing.T) {
	m := newModel("google", testRepos(), "")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(model)

	if m.licenseFilter {
		t.Fatal("licenseFilter should stay false without a license")
	}
	if len(m.repoList.Items()) != 4 {
		t.Fatalf("expected 4 items, got %d", len(m.repoList.Items()))
	}
}

func TestTypingFiltersRepos(t *testing.T) {
	m := newModel("google", testRepos(), "")

	for _, r := range "net" {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(model)
	}

	if got := itemNames(m); len(got) != 1 || got[0] != "cpp-netlib" {
		t.Fatalf("items = %v, want [cpp-netlib]", got)
	}
}

func TestEnterSelectsRepo(t *testing.T) {
	m := newModel("google", testRepos(), "")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(model)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(model)

	if m.selected == nil || m.selected.Name != "cpp-netlib" {
		t.Fatalf("selected = %+v, want cpp-netlib", m.selected)
	}
	if cmd == nil {
		t.Fatal("Enter should return a quit command")
	}
	if m.View() != "" {
		t.Fatal("View() should be empty after quitting")
	}
}

func TestEscCancels(t *testing.T) {
	m := newModel("google", testRepos(), "")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(model)

	if m.selected != nil || !m.quitting {
		t.Fatalf("Esc should quit without selection, got selected=%v quitting=%v", m.selected, m.quitting)
	}
}

func TestViewShowsHeaderAndEmptyState(t *testing.T) {
	m := newModel("google", nil, "mit")

	view := m.View()
	if !strings.Contains(view, "Public repositories of google") {
		t.Fatalf("View() missing header: %q", view)
	}
	if !strings.Contains(view, "No repos found") {
		t.Fatalf("View() missing empty state: %q", view)
	}
	if !strings.Contains(view, "license: mit") {
		t.Fatalf("View() missing license badge: %q", view)
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("short", 10); got != "short" {
		t.Fatalf("truncateString() = %q", got)
	}
	if got := truncateString("abcdefghijkl", 8); got != "abcde..." {
		t.Fatalf("truncateString() = %q, want abcde...", got)
	}
}
