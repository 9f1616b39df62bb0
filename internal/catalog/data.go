package catalog

import "igpt/internal/domain"

var dims = domain.MustDimensions

var defaultCategories = []Category{
	{
		ID:          "logo_picto",
		Name:        Text{LangEnglish: "Icon logo", LangFrench: "Logo pictogramme"},
		Description: Text{LangEnglish: "A symbol-only mark, without any text", LangFrench: "Un symbole seul, sans aucun texte"},
		BasePrompt: Text{
			LangEnglish: "minimalist vector pictogram logo, single centered symbol, flat design, no text, plain white background",
			LangFrench:  "logo pictogramme vectoriel minimaliste, symbole unique centré, design plat, sans texte, fond blanc uni",
		},
		ExpertMode: ExpertModeFixedAssisted,
		Kind:       domain.MediaKindImage,
	},
	{
		ID:          "logo_complete",
		Name:        Text{LangEnglish: "Complete logo", LangFrench: "Logo complet"},
		Description: Text{LangEnglish: "Symbol and brand name, described in your own words", LangFrench: "Symbole et nom de marque, décrits avec vos propres mots"},
		BasePrompt: Text{
			LangEnglish: "complete brand logo combining a symbol and typography, vector style, balanced layout",
			LangFrench:  "logo de marque complet associant symbole et typographie, style vectoriel, mise en page équilibrée",
		},
		ExpertMode: ExpertModeFixedExpert,
		Kind:       domain.MediaKindImage,
	},
	{
		ID:          "print",
		Name:        Text{LangEnglish: "Print", LangFrench: "Impression"},
		Description: Text{LangEnglish: "Flyers, posters, business cards and other printed media", LangFrench: "Flyers, affiches, cartes de visite et autres supports imprimés"},
		BasePrompt: Text{
			LangEnglish: "print-ready graphic design, clear visual hierarchy, crisp typography, high resolution",
			LangFrench:  "design graphique prêt à imprimer, hiérarchie visuelle claire, typographie nette, haute résolution",
		},
		ExpertMode: ExpertModeToggleable,
		Kind:       domain.MediaKindImage,
		Subformats: []Subformat{
			{
				ID:         "square",
				Name:       Text{LangEnglish: "Square", LangFrench: "Carré"},
				Prompt:     Text{LangEnglish: "square format, centered composition", LangFrench: "format carré, composition centrée"},
				Dimensions: dims("1080x1080"),
			},
			{
				ID:         "a4",
				Name:       Text{LangEnglish: "A4 sheet", LangFrench: "Feuille A4"},
				Prompt:     Text{LangEnglish: "A4 document layout with safe margins", LangFrench: "mise en page de document A4 avec marges de sécurité"},
				Dimensions: dims("2480x3508"),
				Orientations: []Orientation{
					{ID: "a4_portrait", Name: Text{LangEnglish: "Portrait", LangFrench: "Portrait"}, Dimensions: dims("2480x3508")},
					{ID: "a4_landscape", Name: Text{LangEnglish: "Landscape", LangFrench: "Paysage"}, Dimensions: dims("3508x2480")},
				},
			},
			{
				ID:         "flyer_a5",
				Name:       Text{LangEnglish: "A5 flyer", LangFrench: "Flyer A5"},
				Prompt:     Text{LangEnglish: "A5 promotional flyer, bold headline area", LangFrench: "flyer promotionnel A5, zone de titre marquante"},
				Dimensions: dims("1748x2480"),
			},
			{
				ID:         "business_card",
				Name:       Text{LangEnglish: "Business card", LangFrench: "Carte de visite"},
				Prompt:     Text{LangEnglish: "business card design, minimal layout, space for contact details", LangFrench: "design de carte de visite, mise en page minimale, espace pour les coordonnées"},
				Dimensions: dims("1050x600"),
				Orientations: []Orientation{
					{ID: "business_card_horizontal", Name: Text{LangEnglish: "Horizontal", LangFrench: "Horizontale"}, Dimensions: dims("1050x600")},
					{ID: "business_card_vertical", Name: Text{LangEnglish: "Vertical", LangFrench: "Verticale"}, Dimensions: dims("600x1050")},
				},
			},
			{
				ID:         "poster",
				Name:       Text{LangEnglish: "Poster", LangFrench: "Affiche"},
				Prompt:     Text{LangEnglish: "large format poster, strong focal point, readable from a distance", LangFrench: "affiche grand format, point focal fort, lisible de loin"},
				Dimensions: dims("1414x2000"),
			},
		},
	},
	{
		ID:          "social_post",
		Name:        Text{LangEnglish: "Social media", LangFrench: "Réseaux sociaux"},
		Description: Text{LangEnglish: "Posts, stories, covers and thumbnails", LangFrench: "Publications, stories, couvertures et miniatures"},
		BasePrompt: Text{
			LangEnglish: "eye-catching social media visual, bold composition, vibrant colors, scroll-stopping",
			LangFrench:  "visuel accrocheur pour les réseaux sociaux, composition audacieuse, couleurs vives, qui arrête le défilement",
		},
		ExpertMode: ExpertModeToggleable,
		Kind:       domain.MediaKindImage,
		Subformats: []Subformat{
			{
				ID:         "instagram_post",
				Name:       Text{LangEnglish: "Instagram post", LangFrench: "Publication Instagram"},
				Prompt:     Text{LangEnglish: "square Instagram post", LangFrench: "publication Instagram carrée"},
				Dimensions: dims("1080x1080"),
			},
			{
				ID:         "instagram_story",
				Name:       Text{LangEnglish: "Story", LangFrench: "Story"},
				Prompt:     Text{LangEnglish: "vertical full-screen story, key content in the central safe area", LangFrench: "story verticale plein écran, contenu clé dans la zone centrale"},
				Dimensions: dims("1080x1920"),
			},
			{
				ID:         "facebook_post",
				Name:       Text{LangEnglish: "Facebook post", LangFrench: "Publication Facebook"},
				Prompt:     Text{LangEnglish: "landscape Facebook post image", LangFrench: "image de publication Facebook en paysage"},
				Dimensions: dims("1200x630"),
			},
			{
				ID:         "linkedin_post",
				Name:       Text{LangEnglish: "LinkedIn post", LangFrench: "Publication LinkedIn"},
				Prompt:     Text{LangEnglish: "professional LinkedIn post image, corporate tone", LangFrench: "image de publication LinkedIn professionnelle, ton corporate"},
				Dimensions: dims("1200x627"),
			},
			{
				ID:         "youtube_thumbnail",
				Name:       Text{LangEnglish: "YouTube thumbnail", LangFrench: "Miniature YouTube"},
				Prompt:     Text{LangEnglish: "YouTube thumbnail, high contrast, expressive subject", LangFrench: "miniature YouTube, fort contraste, sujet expressif"},
				Dimensions: dims("1280x720"),
			},
		},
	},
	{
		ID:          "photo",
		Name:        Text{LangEnglish: "Photo", LangFrench: "Photo"},
		Description: Text{LangEnglish: "Realistic photographs of any subject", LangFrench: "Photographies réalistes de tout sujet"},
		BasePrompt: Text{
			LangEnglish: "realistic photograph, natural lighting, shallow depth of field, detailed textures",
			LangFrench:  "photographie réaliste, lumière naturelle, faible profondeur de champ, textures détaillées",
		},
		ExpertMode: ExpertModeToggleable,
		Kind:       domain.MediaKindImage,
	},
	{
		ID:          "video_clip",
		Name:        Text{LangEnglish: "Video", LangFrench: "Vidéo"},
		Description: Text{LangEnglish: "Short animated clips", LangFrench: "Courts clips animés"},
		BasePrompt: Text{
			LangEnglish: "short cinematic video clip, smooth camera motion, consistent subject",
			LangFrench:  "court clip vidéo cinématographique, mouvement de caméra fluide, sujet cohérent",
		},
		ExpertMode: ExpertModeToggleable,
		Kind:       domain.MediaKindVideo,
		Subformats: []Subformat{
			{
				ID:         "video_landscape",
				Name:       Text{LangEnglish: "Landscape 16:9", LangFrench: "Paysage 16:9"},
				Prompt:     Text{LangEnglish: "widescreen 16:9 framing", LangFrench: "cadrage panoramique 16:9"},
				Dimensions: dims("1280x720"),
			},
			{
				ID:         "video_vertical",
				Name:       Text{LangEnglish: "Vertical 9:16", LangFrench: "Vertical 9:16"},
				Prompt:     Text{LangEnglish: "vertical 9:16 framing for mobile", LangFrench: "cadrage vertical 9:16 pour mobile"},
				Dimensions: dims("720x1280"),
			},
		},
	},
	{
		ID:                "free_prompt",
		Name:              Text{LangEnglish: "Free prompt", LangFrench: "Prompt libre"},
		Description:       Text{LangEnglish: "Your text is sent as written", LangFrench: "Votre texte est envoyé tel quel"},
		BasePrompt:        Text{},
		ExpertMode:        ExpertModeToggleable,
		DefaultExpertMode: true,
		FreeformOverride:  true,
		Kind:              domain.MediaKindImage,
	},
}

var defaultStyles = []Style{
	{ID: "photorealistic", Name: Text{LangEnglish: "Photorealistic", LangFrench: "Photoréaliste"}, Prompt: Text{LangEnglish: "photorealistic style", LangFrench: "style photoréaliste"}},
	{ID: "flat_illustration", Name: Text{LangEnglish: "Flat illustration", LangFrench: "Illustration plate"}, Prompt: Text{LangEnglish: "flat vector illustration style", LangFrench: "style illustration vectorielle plate"}},
	{ID: "watercolor", Name: Text{LangEnglish: "Watercolor", LangFrench: "Aquarelle"}, Prompt: Text{LangEnglish: "soft watercolor painting style", LangFrench: "style peinture aquarelle douce"}},
	{ID: "render_3d", Name: Text{LangEnglish: "3D render", LangFrench: "Rendu 3D"}, Prompt: Text{LangEnglish: "glossy 3D render, studio lighting", LangFrench: "rendu 3D brillant, éclairage studio"}},
	{ID: "minimalist", Name: Text{LangEnglish: "Minimalist", LangFrench: "Minimaliste"}, Prompt: Text{LangEnglish: "minimalist style, generous negative space", LangFrench: "style minimaliste, espace négatif généreux"}},
	{ID: "vintage", Name: Text{LangEnglish: "Vintage", LangFrench: "Vintage"}, Prompt: Text{LangEnglish: "vintage retro style, subtle grain", LangFrench: "style rétro vintage, grain subtil"}},
	{ID: "neon_cyberpunk", Name: Text{LangEnglish: "Neon cyberpunk", LangFrench: "Néon cyberpunk"}, Prompt: Text{LangEnglish: "neon cyberpunk style, glowing accents", LangFrench: "style cyberpunk néon, accents lumineux"}},
	{ID: "anime", Name: Text{LangEnglish: "Anime", LangFrench: "Anime"}, Prompt: Text{LangEnglish: "anime illustration style, clean line art", LangFrench: "style illustration anime, traits nets"}},
}

var defaultPalettes = []Palette{
	{ID: "ocean", Name: Text{LangEnglish: "Ocean", LangFrench: "Océan"}, Colors: []string{"#0B3C5D", "#328CC1", "#D9B310", "#1D2731"}},
	{ID: "sunset", Name: Text{LangEnglish: "Sunset", LangFrench: "Coucher de soleil"}, Colors: []string{"#FF5E5B", "#FFB347", "#FFD166", "#6A0572"}},
	{ID: "forest", Name: Text{LangEnglish: "Forest", LangFrench: "Forêt"}, Colors: []string{"#2D6A4F", "#40916C", "#95D5B2", "#D8F3DC"}},
	{ID: "pastel", Name: Text{LangEnglish: "Pastel", LangFrench: "Pastel"}, Colors: []string{"#FFD1DC", "#CDEAC0", "#AEC6CF", "#FDFD96"}},
	{ID: "monochrome", Name: Text{LangEnglish: "Monochrome", LangFrench: "Monochrome"}, Colors: []string{"#000000", "#4D4D4D", "#B3B3B3", "#FFFFFF"}},
	{ID: "corporate", Name: Text{LangEnglish: "Corporate", LangFrench: "Corporate"}, Colors: []string{"#003366", "#336699", "#E6E6E6", "#FF9900"}},
}
