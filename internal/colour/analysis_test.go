package colour

import (
	"testing"
)

func TestAnalyzeEmptySequence(t *testing.T) {
	if _, err := Analyze(nil); err == nil {
		t.Fatal("Analyze(nil) expected error, got nil")
	}
	if _, err := Analyze([]RGB{}); err == nil {
		t.Fatal("Analyze(empty) expected error, got nil")
	}
}

func TestAnalyzeUniformSequence(t *testing.T) {
	seq := make([]RGB, 240)
	for i := range seq {
		seq[i] = RGB{R: 10, G: 20, B: 30}
	}

	got, err := Analyze(seq)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	want := RGB{R: 10, G: 20, B: 30}
	if got.Average != want {
		t.Errorf("Average = %+v, want %+v", got.Average, want)
	}
	if got.Dominant != want {
		t.Errorf("Dominant = %+v, want %+v", got.Dominant, want)
	}
	if got.Least != want {
		t.Errorf("Least = %+v, want %+v", got.Least, want)
	}
}

func TestAnalyzeTwoDistantClusters(t *testing.T) {
	// 200 reds and 40 blues, far beyond the clustering threshold apart.
	var seq []RGB
	for i := 0; i < 240; i++ {
		if i%6 == 5 {
			seq = append(seq, RGB{B: 255})
		} else {
			seq = append(seq, RGB{R: 255})
		}
	}

	got, err := Analyze(seq)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if want := (RGB{R: 255}); got.Dominant != want {
		t.Errorf("Dominant = %+v, want %+v", got.Dominant, want)
	}
	if want := (RGB{B: 255}); got.Least != want {
		t.Errorf("Least = %+v, want %+v", got.Least, want)
	}
}

func TestAnalyzeAverageIsComponentwiseMean(t *testing.T) {
	seq := []RGB{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 10, G: 20, B: 30},
	}

	got, err := Analyze(seq)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	// (0+255+10)/3 = 88.33 -> 88, (0+255+20)/3 = 91.67 -> 92,
	// (0+255+30)/3 = 95.
	want := RGB{R: 88, G: 92, B: 95}
	if got.Average != want {
		t.Errorf("Average = %+v, want %+v", got.Average, want)
	}
}

func TestAnalyzeSingleClusterCollapses(t *testing.T) {
	// All colours pairwise within the threshold: one cluster, so
	// dominant, least and average coincide within rounding.
	seq := []RGB{
		{R: 100, G: 100, B: 100},
		{R: 104, G: 98, B: 101},
		{R: 97, G: 103, B: 99},
		{R: 101, G: 100, B: 102},
	}

	got, err := Analyze(seq)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if got.Dominant != got.Least {
		t.Errorf("single cluster: Dominant %+v != Least %+v", got.Dominant, got.Least)
	}
	if Distance(got.Dominant, got.Average) > 1.0 {
		t.Errorf("single cluster: Dominant %+v too far from Average %+v", got.Dominant, got.Average)
	}
}

func TestAnalyzeFirstFitAssignment(t *testing.T) {
	// The second colour is within the threshold of the first cluster's
	// centroid, so it must join that cluster rather than found its own,
	// even though a closer cluster is created later.
	seq := []RGB{
		{R: 100},      // cluster A
		{R: 125},      // joins A (distance 25), pulling the centroid to 112.5
		{R: 200},      // cluster B
		{R: 130},      // distance to A centroid 17.5 -> joins A
		{R: 200},      // joins B
		{R: 200},      // joins B
		{R: 200},      // joins B
	}

	got, err := Analyze(seq)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	// Cluster B has 4 members, cluster A has 3.
	if want := (RGB{R: 200}); got.Dominant != want {
		t.Errorf("Dominant = %+v, want %+v", got.Dominant, want)
	}
	// A's centroid: (100 + 125 + 130) / 3 = 118.33 -> 118.
	if want := (RGB{R: 118}); got.Least != want {
		t.Errorf("Least = %+v, want %+v", got.Least, want)
	}
}

func TestClusterIncrementalMean(t *testing.T) {
	cl := &cluster{r: 10, g: 10, b: 10, count: 1}
	cl.add(RGB{R: 20, G: 20, B: 20})
	cl.add(RGB{R: 30, G: 30, B: 30})

	if cl.count != 3 {
		t.Fatalf("count = %d, want 3", cl.count)
	}
	if got, want := cl.centroid(), (RGB{R: 20, G: 20, B: 20}); got != want {
		t.Errorf("centroid = %+v, want %+v", got, want)
	}
}
