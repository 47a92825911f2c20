package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"leafcheck/config"
	"leafcheck/internal/domain/entity"
	"leafcheck/internal/infrastructure/tuning"
	"leafcheck/internal/infrastructure/vision"
)

// sliderFlags собирает повторяющиеся -set hmin=12.
type sliderFlags []tuning.Event

func (s *sliderFlags) String() string {
	parts := make([]string, 0, len(*s))
	for _, e := range *s {
		parts = append(parts, fmt.Sprintf("%s=%d", e.Slider, e.Value))
	}
	return strings.Join(parts, ",")
}

func (s *sliderFlags) Set(v string) error {
	e, err := tuning.ParseEvent(v)
	if err != nil {
		return err
	}
	*s = append(*s, e)
	return nil
}

func main() {
	var (
		imagePath = flag.String("image", "", "path to the leaf image")
		outDir    = flag.String("out", ".", "directory for result artifacts")
		preset    = flag.String("tune", "", "preset to tune: brown, yellow, leaf-green, foliage")
		notesPath = flag.String("notes", "research_notes.txt", "research notes file for -tune")
		save      = flag.Bool("save", false, "with -tune: write the tuned preset to THRESHOLDS_FILE")
		sliders   sliderFlags
	)
	flag.Var(&sliders, "set", "with -tune: slider change, e.g. hmin=12 (repeatable)")
	flag.Parse()

	if *imagePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	img, err := vision.LoadFile(*imagePath, cfg.MaxSide)
	if err != nil {
		log.Fatalf("Failed to load image: %v", err)
	}
	frame, err := vision.FrameFromImage(img)
	if err != nil {
		log.Fatalf("Failed to convert image: %v", err)
	}

	analyzer := vision.NewAnalyzer(cfg.Thresholds, cfg.KernelSize, cfg.MaxSide)
	analyzer.MinRegionArea = cfg.MinRegionArea

	if *preset != "" {
		if err := tune(cfg, analyzer, frame, *imagePath, *outDir, *notesPath, *preset, sliders, *save); err != nil {
			log.Fatalf("Tuning failed: %v", err)
		}
		return
	}

	report, err := analyzer.Analyze(context.Background(), frame)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}
	printReport(report)

	if err := writeArtifacts(*outDir, img, report); err != nil {
		log.Fatalf("Failed to write results: %v", err)
	}
	fmt.Printf("\nResults saved to %s\n", *outDir)
}

func printReport(report *entity.LeafReport) {
	fmt.Println("==================================================")
	fmt.Println("SYMPTOM DETECTION RESULT")
	fmt.Println("==================================================")
	fmt.Printf("Brown Symptoms:  %.2f%%\n", report.Symptoms.BrownPercentage)
	fmt.Printf("Yellow Symptoms: %.2f%%\n", report.Symptoms.YellowPercentage)
	fmt.Printf("Total Symptoms:  %.2f%%\n", report.Symptoms.TotalPercentage)
	fmt.Printf("Dominant:        %s\n", report.Symptoms.Dominant)
	fmt.Printf("Severity:        %s\n", strings.ToUpper(string(report.Severity)))
	fmt.Printf("Leaf Coverage:   %.2f%%\n", report.LeafCoverage)

	counts := report.CountByCondition()
	fmt.Printf("Regions: %d (fresh %d, wilted %d, rotten %d, unknown %d)\n", len(report.Regions),
		counts[entity.ConditionFresh], counts[entity.ConditionWilted],
		counts[entity.ConditionRotten], counts[entity.ConditionUnknown])
}

// writeArtifacts сохраняет признаки областей, маску симптомов и изображение с подсветкой.
func writeArtifacts(dir string, img image.Image, report *entity.LeafReport) error {
	regions := report.Regions
	if regions == nil {
		regions = []entity.RegionFeature{}
	}
	data, err := json.MarshalIndent(regions, "", "    ")
	if err != nil {
		return fmt.Errorf("encode regions: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "leaf_conditions.json"), data, 0644); err != nil {
		return fmt.Errorf("write regions: %w", err)
	}

	if err := tuning.SaveMask(filepath.Join(dir, "symptom_mask.png"), report.SymptomMask); err != nil {
		return err
	}

	result := vision.Highlight(img, report)
	if err := imaging.Save(result, filepath.Join(dir, "detection_result.jpg"), imaging.JPEGQuality(90)); err != nil {
		return fmt.Errorf("save highlight: %w", err)
	}
	return nil
}

// tune применяет движения ползунков к пресету, сохраняет маску и запись в журнал.
func tune(cfg *config.Config, analyzer *vision.Analyzer, frame *entity.Frame, imagePath, outDir, notesPath, name string, sliders []tuning.Event, save bool) error {
	start, ok := cfg.Thresholds.Preset(name)
	if !ok {
		return fmt.Errorf("unknown preset %q", name)
	}

	tuner := tuning.NewTuner(start)
	for _, e := range sliders {
		if err := tuner.Apply(e); err != nil {
			return err
		}
	}
	tuned := tuner.Threshold()

	mask, err := analyzer.SymptomMask(frame, tuned)
	if err != nil {
		return err
	}
	maskPath := filepath.Join(outDir, name+"_mask.png")
	if err := tuning.SaveMask(maskPath, mask); err != nil {
		return err
	}

	note := tuning.Note{Time: time.Now(), Image: imagePath, Threshold: tuned}
	if err := tuning.AppendNotes(notesPath, note); err != nil {
		return err
	}

	lower, upper := tuned.Bounds()
	fmt.Printf("Preset:      %s\n", tuned.Name)
	fmt.Printf("Lower Bound: %s\n", lower)
	fmt.Printf("Upper Bound: %s\n", upper)
	fmt.Printf("Coverage:    %.2f%%\n", mask.Percentage())
	fmt.Printf("Mask saved to %s, notes appended to %s\n", maskPath, notesPath)

	if save {
		set, _ := cfg.Thresholds.WithPreset(tuned)
		if err := config.SaveThresholds(cfg.ThresholdsFile, set); err != nil {
			return err
		}
		fmt.Printf("Presets written to %s\n", cfg.ThresholdsFile)
	}
	return nil
}
