package conv

import (
	"reflect"
	"testing"
)

var intType = reflect.TypeOf(0)

func BenchmarkConverter_FloatToInt(b *testing.B) {
	c := NewConverter(DefaultOptions())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.ConvertTo(42.9, intType); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkConverter_StringToTime(b *testing.B) {
	c := NewConverter(DefaultOptions())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.ConvertTo("2023-01-15T12:30:45Z", timeType); err != nil {
			b.Fatal(err)
		}
	}
}
