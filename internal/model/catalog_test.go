package model

import "testing"

func TestParseCourseType(t *testing.T) {
	cases := []struct {
		in   string
		want CourseType
		ok   bool
	}{
		{"CAInter", CourseTypeCAInter, true},
		{"CAFinal", CourseTypeCAFinal, true},
		{"cainter", CourseTypeCAInter, true},
		{"CAFINAL", CourseTypeCAFinal, true},
		{"CaInTeR", CourseTypeCAInter, true},
		{"CMA", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := ParseCourseType(c.in)
		if ok != c.ok {
			t.Fatalf("ParseCourseType(%q) ok = %t, want %t", c.in, ok, c.ok)
		}
		if ok && got != c.want {
			t.Fatalf("ParseCourseType(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParsedCourseTypeValidates(t *testing.T) {
	// Whatever spelling arrives in the URL, the parsed value must pass
	// the same validation the upstream client relies on.
	for _, in := range []string{"CAInter", "CAFinal", "cainter", "cafinal"} {
		ct, ok := ParseCourseType(in)
		if !ok || !ct.Valid() {
			t.Fatalf("ParseCourseType(%q) = %q, ok=%t, Valid=%t", in, ct, ok, ct.Valid())
		}
	}
}
