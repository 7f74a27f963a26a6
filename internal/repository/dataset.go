package repository

import "github.com/azizikri/edulearn/internal/domain"

func DefaultCourses() []domain.Course {
	return []domain.Course{
		{
			ID:          "1",
			Title:       "Machine Learning Specialization",
			Description: "Master the fundamentals of machine learning and deep learning",
			Instructor:  "Andrew Ng",
			Price:       49,
			Rating:      4.9,
			Students:    150000,
			Image:       "/api/placeholder/400/250",
		},
		{
			ID:          "2",
			Title:       "Deep Learning Specialization",
			Description: "Build and train neural networks with TensorFlow",
			Instructor:  "Andrew Ng",
			Price:       49,
			Rating:      4.8,
			Students:    120000,
			Image:       "/api/placeholder/400/250",
		},
		{
			ID:          "3",
			Title:       "AI for Everyone",
			Description: "Learn AI concepts without coding",
			Instructor:  "Andrew Ng",
			Price:       29,
			Rating:      4.7,
			Students:    200000,
			Image:       "/api/placeholder/400/250",
		},
		{
			ID:          "4",
			Title:       "Natural Language Processing",
			Description: "Build NLP applications with sequence models",
			Instructor:  "Younes Bensouda Mourri",
			Price:       49,
			Rating:      4.6,
			Students:    80000,
			Image:       "/api/placeholder/400/250",
		},
	}
}

func DefaultBanners() []domain.Banner {
	return []domain.Banner{
		{
			ID:       "1",
			Title:    "Learn AI from Industry Experts",
			Subtitle: "Join millions of learners building AI skills",
			ImageURL: "/api/placeholder/1200/400",
		},
		{
			ID:       "2",
			Title:    "Advance Your Career in Machine Learning",
			Subtitle: "Get hands-on experience with real-world projects",
			ImageURL: "/api/placeholder/1200/400",
		},
		{
			ID:       "3",
			Title:    "Master Deep Learning",
			Subtitle: "From basics to advanced neural networks",
			ImageURL: "/api/placeholder/1200/400",
		},
	}
}

// DefaultSnapshot builds the snapshot from the bundled dataset.
func DefaultSnapshot() *Snapshot {
	s, err := NewSnapshot(DefaultCourses(), DefaultBanners())
	if err != nil {
		panic(err)
	}
	return s
}
