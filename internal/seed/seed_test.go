package seed

import (
	"context"
	"errors"
	"testing"
)

type recordingUpserter struct {
	languages   map[string]string
	messageKeys []string
	failOn      string
}

func newRecordingUpserter() *recordingUpserter {
	return &recordingUpserter{languages: make(map[string]string)}
}

func (r *recordingUpserter) UpsertLanguage(_ context.Context, name, code string) error {
	if name == r.failOn {
		return errors.New("boom")
	}
	r.languages[name] = code
	return nil
}

func (r *recordingUpserter) UpsertMessageKey(_ context.Context, name string) error {
	if name == r.failOn {
		return errors.New("boom")
	}
	r.messageKeys = append(r.messageKeys, name)
	return nil
}

func TestSeederRun(t *testing.T) {
	repo := newRecordingUpserter()
	if err := NewSeeder(repo).Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{"Polish": "pl", "English": "en", "German": "de"}
	for name, code := range want {
		if repo.languages[name] != code {
			t.Errorf("expected language %s/%s, got %q", name, code, repo.languages[name])
		}
	}
	if len(repo.messageKeys) != 1 || repo.messageKeys[0] != "WELCOME_MESSAGE" {
		t.Errorf("expected WELCOME_MESSAGE, got %v", repo.messageKeys)
	}
}

func TestSeederRun_StopsOnFirstError(t *testing.T) {
	repo := newRecordingUpserter()
	repo.failOn = "English"
	if err := NewSeeder(repo).Run(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := repo.languages["German"]; ok {
		t.Error("seeding should stop at the failing row")
	}
}
