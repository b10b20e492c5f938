package report

import "kakao/internal/chart"

// Section is one titled block of a tab: an optional chart, an optional
// table and its conclusions.
type Section struct {
	Title string
	Chart string
	Table string
	Notes []string
}

// Tab groups the sections shown together on the dashboard.
type Tab struct {
	ID       string
	Title    string
	Sections []Section
}

// Tabs returns the dashboard layout. The last tab carries the overall
// conclusions only.
func Tabs() []Tab {
	return []Tab{
		{
			ID:    "produksi",
			Title: "Analisis Data Produksi dan Permintaan Kakao",
			Sections: []Section{
				{
					Title: "Trend Produksi per Tahun",
					Chart: chart.ProductionTrend,
					Table: SheetYearly,
					Notes: []string{
						"Grafik menunjukkan fluktuasi produksi kakao dari tahun ke tahun, dengan puncak dan titik terendah pada tahun yang berbeda.",
						"Produksi rata-rata per tahun bervariasi, dengan tahun tertentu menunjukkan produksi rata-rata yang lebih tinggi dibandingkan tahun lainnya.",
					},
				},
				{
					Title: "Pertumbuhan Produksi Tahunan",
					Chart: chart.NationalTrend,
					Table: SheetGrowth,
					Notes: []string{
						"Label pada grafik adalah persentase pertumbuhan total produksi terhadap tahun sebelumnya.",
						"Wilayah teratas menunjukkan penyumbang produksi terbesar pada setiap tahun.",
					},
				},
				{
					Title: "Wilayah dengan Produksi Tertinggi",
					Chart: chart.TopRegions,
					Table: SheetRegional,
					Notes: []string{
						"Grafik batang menunjukkan wilayah dengan produksi tertinggi.",
						"Wilayah dengan produksi tertinggi memiliki potensi besar untuk pengembangan lebih lanjut.",
					},
				},
				{
					Title: "Pengaruh Curah Hujan terhadap Produksi",
					Chart: chart.Rainfall,
					Table: SheetRainfall,
					Notes: []string{
						"Curah hujan sedang memberikan dampak positif pada produksi kakao, dengan rata-rata produksi tertinggi.",
						"Curah hujan rendah dan tinggi menghasilkan rata-rata produksi yang lebih rendah.",
					},
				},
				{
					Title: "Analisis Permintaan Pasar",
					Chart: chart.MarketDemand,
					Table: SheetDemand,
					Notes: []string{
						"Permintaan pasar tidak selalu selaras dengan produksi kakao.",
						"Harga rata-rata cenderung menurun seiring meningkatnya permintaan pasar.",
					},
				},
				{
					Title: "Harga per Wilayah",
					Chart: chart.RegionPrice,
					Table: SheetPrices,
					Notes: []string{
						"Grafik menunjukkan harga rata-rata kakao per wilayah.",
						"Harga rata-rata mungkin mencerminkan volume produksi yang lebih tinggi di wilayah tertentu.",
					},
				},
				{
					Title: "Analisis Korelasi",
					Chart: chart.Correlation,
					Table: SheetCorrelation,
					Notes: []string{
						"Heatmap korelasi menunjukkan hubungan antara produksi, harga, luas lahan, dan konsumsi per kapita.",
						"Korelasi yang lemah antara produksi dan harga mengindikasikan bahwa peningkatan produksi tidak secara langsung memengaruhi harga.",
						"Sel bertanda '-' tidak terdefinisi karena salah satu variabel bernilai konstan.",
					},
				},
				{
					Title: "Wilayah Paling Potensial",
					Chart: chart.Potential,
					Table: SheetPotential,
					Notes: []string{
						"Skor potensi menggabungkan rata-rata produksi (30%), konsumsi per kapita (30%), dan harga (40%).",
						"Wilayah dengan skor tertinggi memiliki rata-rata produksi tinggi, konsumsi per kapita stabil, dan harga rata-rata yang kompetitif.",
					},
				},
			},
		},
		{
			ID:    "analisis",
			Title: "Analisis Data Kakao",
			Sections: []Section{
				{
					Title: "Analisis Seasonality (Pola Produksi Berdasarkan Curah Hujan)",
					Chart: chart.Seasonality,
					Table: SheetSeasonality,
					Notes: []string{
						"Grafik garis menunjukkan pola produksi berdasarkan curah hujan dari tahun ke tahun.",
					},
				},
				{
					Title: "Proyeksi Permintaan dan Produksi",
					Chart: chart.Projection,
					Table: SheetProjection,
					Notes: []string{
						"Garis putus-putus adalah proyeksi tren linear dari total produksi tahunan.",
						"Proyeksi yang menurun menunjukkan perlunya upaya untuk meningkatkan produktivitas.",
					},
				},
				{
					Title: "Analisis Kompetisi (Market Share)",
					Chart: chart.MarketShare,
					Table: SheetMarketShare,
					Notes: []string{
						"Grafik batang menunjukkan pangsa pasar per wilayah.",
						"Wilayah dengan pangsa pasar besar memiliki kontribusi signifikan terhadap total produksi.",
					},
				},
				{
					Title: "Analisis Faktor Harga",
					Chart: chart.PriceFactor,
					Notes: []string{
						"Scatter plot menunjukkan hubungan antara produksi dan harga per wilayah.",
						"Faktor lain seperti luas lahan juga tidak menunjukkan hubungan signifikan dengan harga.",
					},
				},
			},
		},
		{
			ID:    "risiko",
			Title: "Analisis Risiko dan Rekomendasi Implementasi",
			Sections: []Section{
				{
					Title: "Analisis Skor Wilayah",
					Chart: chart.Potential,
					Notes: []string{
						"Wilayah dengan skor tinggi memiliki potensi besar untuk pengembangan kakao.",
						"Wilayah dengan skor menengah memiliki potensi untuk ditingkatkan dengan intervensi yang tepat.",
					},
				},
				{
					Title: "Analisis Risiko Produksi",
					Chart: chart.Risk,
					Table: SheetRisk,
					Notes: []string{
						"Wilayah dengan standar deviasi tinggi menunjukkan risiko produksi yang lebih besar.",
						"Wilayah ini mungkin memerlukan strategi mitigasi risiko untuk meningkatkan stabilitas produksi.",
						"Tingkat risiko dihitung dari koefisien variasi: rendah hingga 0.15, sedang hingga 0.30, dan tinggi di atasnya.",
					},
				},
				{
					Title: "Tahun Puncak per Wilayah",
					Table: SheetPeaks,
					Notes: []string{
						"Tahun puncak menunjukkan kapan setiap wilayah mencapai total produksi tertinggi.",
						"Wilayah yang puncaknya sudah lama berlalu perlu dievaluasi produktivitas kebunnya.",
					},
				},
				{
					Title: "Rekomendasi Implementasi",
					Table: SheetRecommendation,
					Notes: []string{
						"Ekspansi agresif, fokus peningkatan kapasitas untuk wilayah unggulan.",
						"Pengembangan bertahap, fokus efisiensi untuk wilayah potensial.",
						"Evaluasi ulang strategi, fokus perbaikan fundamental untuk wilayah berkembang.",
					},
				},
			},
		},
		{
			ID:    "peluang",
			Title: "Analisis Peluang Pasar Kakao di Pulau Morotai",
			Sections: []Section{
				{
					Title: "Peluang Pasar Berdasarkan Permintaan",
					Chart: chart.Opportunity,
					Table: SheetOpportunity,
					Notes: []string{
						"Peluang pasar terbesar ada di wilayah dengan permintaan tinggi.",
						"Wilayah dengan permintaan sedang memiliki potensi untuk ditingkatkan melalui strategi pemasaran.",
					},
				},
			},
		},
		{
			ID:    "kesimpulan",
			Title: "Kesimpulan Utama",
			Sections: []Section{
				{
					Title: "Kesimpulan Utama",
					Notes: KeyConclusions(),
				},
			},
		},
	}
}

// KeyConclusions are the overall findings closing the dashboard and report.
func KeyConclusions() []string {
	return []string{
		"Produksi kakao di Pulau Morotai memiliki potensi besar untuk dikembangkan.",
		"Peningkatan produksi dan pemasaran dapat meningkatkan profitabilitas.",
		"Manajemen risiko dan diversifikasi produk diperlukan untuk mengurangi fluktuasi harga.",
	}
}
