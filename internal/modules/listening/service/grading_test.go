package service_test

import (
	"testing"

	"studyhub/internal/modules/listening/domain"
	"studyhub/internal/modules/listening/service"
)

func TestGrade(t *testing.T) {
	t.Parallel()
	exercise := domain.Exercise{ID: "marine", Sections: []domain.Section{
		{ID: "s1", Audio: "a.mp3", Questions: []domain.Question{{ID: "q1", Answer: "ocean life"}, {ID: "q2", Answer: "5"}}},
		{ID: "s2", Audio: "b.mp3", Questions: []domain.Question{{ID: "q3", Answer: "Plankton"}, {ID: "q4", Answer: "71"}}},
	}}
	result := service.Grade(exercise, map[string]string{"q1": "  Ocean Life ", "q3": "plankton", "q4": "70"})
	if result.Correct != 2 || result.Total != 4 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Band != 4.5 {
		t.Fatalf("expected band 4.5, got %v", result.Band)
	}
}
