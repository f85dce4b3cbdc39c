package archive

import (
	"context"
	"testing"
)

func TestLocalFS(t *testing.T) {
	fs, err := NewLocalFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := fs.Put(ctx, "a/b/doc.json", []byte(`{"x":1}`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	data, err := fs.Get(ctx, "a/b/doc.json")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(data) != `{"x":1}` {
		t.Errorf("Get() = %q", data)
	}

	ok, err := fs.Exists(ctx, "a/b/doc.json")
	if err != nil || !ok {
		t.Errorf("Exists() = %v, %v; want true, nil", ok, err)
	}

	paths, err := fs.List(ctx, "a")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(paths) != 1 {
		t.Errorf("List() = %v, want one path", paths)
	}

	if err := fs.Delete(ctx, "a/b/doc.json"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	ok, err = fs.Exists(ctx, "a/b/doc.json")
	if err != nil || ok {
		t.Errorf("Exists() after delete = %v, %v; want false, nil", ok, err)
	}
}

func TestLocalFS_ListMissingPrefix(t *testing.T) {
	fs, err := NewLocalFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	paths, err := fs.List(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("List() = %v, want empty", paths)
	}
}

func TestS3Key(t *testing.T) {
	s := &S3Backend{prefix: "archive"}
	if got := s.key("backtests/x.json"); got != "archive/backtests/x.json" {
		t.Errorf("key() = %q", got)
	}
	s = &S3Backend{}
	if got := s.key("backtests/x.json"); got != "backtests/x.json" {
		t.Errorf("key() without prefix = %q", got)
	}
}
