package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageList_Value(t *testing.T) {
	tests := []struct {
		name string
		list ImageList
		want string
	}{
		{name: "nil list", list: nil, want: ""},
		{name: "empty list", list: ImageList{}, want: ""},
		{name: "single image", list: ImageList{"a.jpg"}, want: "a.jpg"},
		{name: "several images", list: ImageList{"a.jpg", "b.png"}, want: "a.jpg,b.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.list.Value()
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestImageList_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  interface{}
		want ImageList
	}{
		{name: "nil source", src: nil, want: nil},
		{name: "empty string", src: "", want: nil},
		{name: "single image", src: "a.jpg", want: ImageList{"a.jpg"}},
		{name: "several images", src: "a.jpg,b.png", want: ImageList{"a.jpg", "b.png"}},
		{name: "byte slice", src: []byte("a.jpg,b.png"), want: ImageList{"a.jpg", "b.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var list ImageList
			require.NoError(t, list.Scan(tt.src))
			assert.Equal(t, tt.want, list)
		})
	}
}

func TestImageList_ScanUnsupportedType(t *testing.T) {
	var list ImageList
	assert.Error(t, list.Scan(42))
}
