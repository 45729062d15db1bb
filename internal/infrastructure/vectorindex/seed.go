package vectorindex

// SeedDocuments 返回内置的高表现参考脚本库。
// 索引文件缺失时用它整体重建；文档顺序即插入序。
func SeedDocuments() []Document {
	return []Document{
		{
			ID:               "seed-fitness-001",
			Hook:             "Are you tired of wasting money on gym memberships you never use?",
			Body:             "Discover how our AI creates personalized home workouts that fit YOUR schedule. No equipment needed. Results in 30 days or money back.",
			CTA:              "Download FitLife Pro now!",
			Sector:           "fitness",
			HookType:         "question",
			Emotion:          "frustration",
			PerformanceLevel: PerformanceHigh,
			EngagementRate:   8.5,
		},
		{
			ID:               "seed-finance-001",
			Hook:             "This one trick changed my entire financial future.",
			Body:             "I automated my savings without thinking about it. Set up smart rules, watch your money grow. No complex spreadsheets.",
			CTA:              "Start your free trial today!",
			Sector:           "finance",
			HookType:         "bold_claim",
			Emotion:          "curiosity",
			PerformanceLevel: PerformanceHigh,
			EngagementRate:   9.2,
		},
		{
			ID:               "seed-fashion-001",
			Hook:             "POV: You finally found jeans that actually fit.",
			Body:             "Custom measurements. Premium denim. Delivered to your door. We analyzed 10,000 body types to create the perfect fit algorithm.",
			CTA:              "Get measured now!",
			Sector:           "fashion",
			HookType:         "relatable",
			Emotion:          "excitement",
			PerformanceLevel: PerformanceHigh,
			EngagementRate:   7.8,
		},
		{
			ID:               "seed-beauty-001",
			Hook:             "Your skin is crying for help and you don't even know it.",
			Body:             "97% of people use the wrong products for their skin type. Our AI analyzes your skin in 60 seconds and recommends the perfect routine. Dermatologist approved.",
			CTA:              "Take the skin quiz now!",
			Sector:           "beauty",
			HookType:         "shocking",
			Emotion:          "urgency",
			PerformanceLevel: PerformanceHigh,
			EngagementRate:   8.9,
		},
		{
			ID:               "seed-productivity-001",
			Hook:             "Stop scrolling - this will save you 10 hours this week.",
			Body:             "Productivity isn't about doing more. It's about doing what matters. Our AI prioritizes your tasks based on impact. Join 50,000+ professionals.",
			CTA:              "Try it free for 14 days!",
			Sector:           "productivity",
			HookType:         "bold_claim",
			Emotion:          "curiosity",
			PerformanceLevel: PerformanceHigh,
			EngagementRate:   9.5,
		},
		{
			ID:               "seed-pets-001",
			Hook:             "What if your pet could tell you exactly what they need?",
			Body:             "Our smart collar monitors health, activity, and mood. Get alerts before problems start. Vet-designed technology. 30-day guarantee.",
			CTA:              "Shop now and save 20%!",
			Sector:           "pets",
			HookType:         "question",
			Emotion:          "curiosity",
			PerformanceLevel: PerformanceHigh,
			EngagementRate:   8.1,
		},
		{
			ID:               "seed-education-001",
			Hook:             "I spent $10,000 on courses so you don't have to.",
			Body:             "Everything you need to launch your online business in one place. Step-by-step system. Real results. No fluff. 1000+ success stories.",
			CTA:              "Join the waitlist now!",
			Sector:           "education",
			HookType:         "relatable",
			Emotion:          "excitement",
			PerformanceLevel: PerformanceHigh,
			EngagementRate:   9.0,
		},
		{
			ID:               "seed-wellness-001",
			Hook:             "Your morning routine is sabotaging your entire day.",
			Body:             "Science-backed morning rituals that actually work. Personalized to your chronotype. Track your energy levels. Feel the difference in 7 days.",
			CTA:              "Download the app free!",
			Sector:           "wellness",
			HookType:         "shocking",
			Emotion:          "urgency",
			PerformanceLevel: PerformanceHigh,
			EngagementRate:   8.7,
		},
	}
}
