package registry

import (
	"errors"
	"reflect"
	"testing"
)

type widget struct{ name string }

func TestRegisterAndCreate(t *testing.T) {
	r := New[int, *widget]("widget")
	r.Register(2, func() *widget { return &widget{name: "two"} })
	r.Register(1, func() *widget { return &widget{name: "one"} })

	if !reflect.DeepEqual(r.IDs(), []int{1, 2}) {
		t.Errorf("IDs() = %v, expected sorted [1 2]", r.IDs())
	}

	w, err := r.Create(2)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if w.name != "two" {
		t.Errorf("Create(2).name = %q", w.name)
	}

	other, _ := r.Create(2)
	if other == w {
		t.Error("Create() should return a fresh instance each call")
	}
}

func TestCreateUnknown(t *testing.T) {
	r := New[string, int]("number")
	if _, err := r.Create("missing"); !errors.Is(err, ErrUnknown) {
		t.Errorf("Create() error = %v, expected ErrUnknown", err)
	}
	if r.Exists("missing") {
		t.Error("Exists() should be false for an unregistered id")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	r := New[string, int]("number")
	r.Register("a", func() int { return 1 })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	r.Register("a", func() int { return 2 })
}
