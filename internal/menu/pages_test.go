package menu

import (
	"reflect"
	"testing"
)

func TestBuildPageSet(t *testing.T) {
	tests := []struct {
		name string
		book Book
		want PageSet
	}{
		{
			name: "full book",
			book: Book{
				CoverURL: "cover.jpg",
				BackURL:  "back.jpg",
				Pages:    []string{"p1.jpg", "p2.jpg"},
			},
			want: PageSet{"cover.jpg", "p1.jpg", "p2.jpg", "back.jpg"},
		},
		{
			name: "no cover",
			book: Book{BackURL: "back.jpg", Pages: []string{"p1.jpg"}},
			want: PageSet{"p1.jpg", "back.jpg"},
		},
		{
			name: "no back",
			book: Book{CoverURL: "cover.jpg", Pages: []string{"p1.jpg"}},
			want: PageSet{"cover.jpg", "p1.jpg"},
		},
		{
			name: "pages only",
			book: Book{Pages: []string{"p1.jpg", "p2.jpg", "p3.jpg"}},
			want: PageSet{"p1.jpg", "p2.jpg", "p3.jpg"},
		},
		{
			name: "empty book",
			book: Book{},
			want: PageSet{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildPageSet(tt.book)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildPageSet() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPageSetLabel(t *testing.T) {
	pages := PageSet{"cover.jpg", "p1.jpg", "p2.jpg", "back.jpg"}

	if got := pages.Label(0); got != "Cover" {
		t.Errorf("Label(0) = %q, want %q", got, "Cover")
	}
	if got := pages.Label(1); got != "2" {
		t.Errorf("Label(1) = %q, want %q", got, "2")
	}
	if got := pages.Label(3); got != "4" {
		t.Errorf("Label(3) = %q, want %q", got, "4")
	}
}
