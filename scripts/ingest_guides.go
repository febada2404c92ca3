package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"mockmate/interview-api/internal/config"
	"mockmate/interview-api/internal/services"
)

func main() {
	log.Println("🚀 Starting guide ingestion...")

	// Load configuration
	cfg := config.Load()

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	guideStore, err := services.NewQdrantGuideStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := guideStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	chunker := services.NewTextChunker()

	ctx := context.Background()

	guides := []struct {
		Path          string
		InterviewType string
		Name          string
	}{
		{
			Path:          "./guide_docs/technical_interview_guide.pdf",
			InterviewType: "technical",
			Name:          "Technical Interview Guide",
		},
		{
			Path:          "./guide_docs/behavioral_interview_guide.pdf",
			InterviewType: "behavioral",
			Name:          "Behavioral Interview Guide (STAR method)",
		},
		{
			Path:          "./guide_docs/resume_interview_guide.pdf",
			InterviewType: "resume",
			Name:          "Resume Walkthrough Guide",
		},
		{
			Path:          "./guide_docs/general_interview_guide.pdf",
			InterviewType: "mixed",
			Name:          "General Interview Preparation Guide",
		},
	}

	successCount := 0
	failCount := 0

	for _, guide := range guides {
		log.Printf("\n📄 Processing: %s", guide.Name)
		log.Printf("   Path: %s", guide.Path)
		log.Printf("   Type: %s", guide.InterviewType)

		// Check if file exists
		if _, err := os.Stat(guide.Path); os.IsNotExist(err) {
			log.Printf("   ⚠️  File not found, skipping...")
			failCount++
			continue
		}

		// Extract text from PDF
		log.Printf("   📖 Extracting text...")
		text, err := pdfParser.ExtractText(guide.Path)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Extracted %d characters", len(text))

		// Chunk the text
		log.Printf("   ✂️  Chunking text...")
		chunks := chunker.ChunkText(text, 1000, 200)
		log.Printf("   ✅ Created %d chunks", len(chunks))

		// Embed and store each chunk
		log.Printf("   🔄 Embedding and storing chunks...")
		for i, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("   ❌ Failed to generate embedding for chunk %d: %v", i+1, err)
				continue
			}

			guideID := fmt.Sprintf("%s_chunk_%d", guide.InterviewType, i)

			err = guideStore.UpsertGuideChunk(ctx, guideID, guide.InterviewType, chunk, embedding)
			if err != nil {
				log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
				continue
			}

			if (i+1)%5 == 0 || i == len(chunks)-1 {
				log.Printf("   📊 Progress: %d/%d chunks stored", i+1, len(chunks))
			}
		}

		log.Printf("   ✅ Successfully ingested %s", guide.Name)
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d guides", successCount)
	log.Printf("   ❌ Failed: %d guides", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some guides failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All guides ingested successfully!")
}
