package vocabulary

import "reviewlens/internal/aspect"

// builtin lists the reason tags an annotator may attach to each aspect.
var builtin = map[aspect.ID][]string{
	aspect.Cleanliness: {
		"temizlik_cok_iyi", "temizlik_iyi", "temizlik_yeterli", "oda_temiz", "oda_kokusuz",
		"oda_guzel_kokuyor", "hijyen_iyi", "temiz_titiz", "temizlik_yetersiz", "oda_genel_kirli",
		"oda_kirli", "toz_kir_birikimi", "camasir_kirli", "koku_kotu", "oda_kokuyor", "bocek_hasere",
		"pas_kirec", "leke_var", "oda_bakimsiz", "hijyen_kotu", "nevresim_kirli", "yatak_kirli",
		"yastik_kirli",
	},
	aspect.Location: {
		"merkeze_yakin", "ulasim_kolay", "konum_cok_iyi", "konum_iyi", "cevre_sakin", "cevre_guzel",
		"manzara_yakin_cevre_guzel", "havalimanina_yakin", "otogara_yakin", "metroya_yakin",
		"sahile_yakin", "denize_yakin", "plaja_yakin", "tarihi_yerler_yakin", "alisverise_yakin",
		"restoranlara_yakin", "yeri_guzel", "merkeze_uzak", "ulasim_zor", "cevre_gurultulu",
		"cevre_tehlikeli", "konum_kotu", "uzak", "yol_kotu", "trafik_sikisik",
	},
	aspect.RoomQuality: {
		"oda_genis", "oda_ferah", "oda_rahat", "oda_konforlu", "oda_guzel", "oda_duzeni_iyi",
		"oda_kalitesi_iyi", "oda_yeni", "oda_bakimli", "mobilya_yeni_duzgun", "mobilya_kaliteli",
		"oda_kullanisli", "oda_aydinlik", "oda_sicaklik_iyi", "oda_iyi", "oda_kusursuz", "oda_kucuk",
		"oda_dar", "oda_bunaltici", "oda_havasiz", "oda_kokuyor", "oda_bakimsiz", "oda_duzeni_kotu",
		"oda_kalitesi_kotu", "oda_eski", "mobilya_eski_yipranmis", "ekipman_eksik", "oda_karanlik",
		"oda_konforsuz", "oda_kotu", "rutubet_sorunu",
	},
	aspect.SleepQuality: {
		"yatak_rahat", "yatak_kaliteli", "yatak_temiz", "yatak_genis", "yastik_rahat",
		"nevresim_kaliteli", "uyku_konforu_iyi", "yatak_yeni", "yorgan_rahat", "yatak_rahatsiz",
		"yatak_cokuk", "yatak_sert", "yatak_eski", "yatak_dar", "yatak_kucuk", "yatak_kirli",
		"yastik_rahatsiz", "yastik_kirli", "nevresim_kalitesiz", "uyku_konforu_kotu", "yorgan_ince",
	},
	aspect.Noise: {
		"sessiz_sakin", "ses_yalitimi_iyi", "sessiz", "sakin_ortam", "dis_gurultu", "ic_gurultu",
		"gece_gurultu", "ses_yalitimi_zayif", "tamirat_gurultu", "trafik_gurultusu", "muzik_gurultusu",
		"komsu_oda_gurultu", "koridor_gurultu", "gurultulu", "ufak_gurultu", "cevre_gurultulu",
	},
	aspect.Staff: {
		"guleryuzlu", "ilgili", "yardimsever", "profesyonel", "kibar", "nazik", "sicakkanli", "samimi",
		"saygili", "iletisim_iyi", "hizli_servis", "cozum_odakli", "misafirperver", "ozenli",
		"anlayisli", "caliskan", "yardimci_oldu", "musteri_iliskisi_iyi", "personel_cok_iyi",
		"personel_genel_iyi", "kaba", "ilgisiz", "profesyonel_degil", "yavas_servis", "iletisim_kotu",
		"sorun_cozmedi", "cozum_uretmedi", "umursamaz", "saygisiz", "soguk_davranis",
		"musteri_iliskisi_kotu", "personel_yetersiz", "personel_eksik", "yardimsever_degil",
	},
	aspect.ValueForMoney: {
		"fiyat_performans_iyi", "uygun", "ucuz", "hesapli", "degdi", "fiyat_uygun", "makul_fiyat",
		"ucretsiz", "pahali", "degmez", "cok_pahali", "fiyat_tutarsiz", "ekstra_ucret", "iade_yapilmadi",
		"kazik", "fiyat_yuksek", "ucretli", "fiyat_pahali",
	},
	aspect.FoodQuality: {
		"lezzetli", "taze", "sicak", "hijyen_iyi", "sunum_iyi", "kaliteli", "doyurucu", "ev_yapimi",
		"organik", "tatli", "porsiyon_buyuk", "yemek_kalitesi_iyi", "lezzetsiz", "bayat", "sicak_degil",
		"soguk_geldi", "hijyen_kotu", "sunum_kotu", "mide_rahatsizlik", "tatsiz", "yagli", "tuzlu",
		"porsiyon_az", "porsiyon_kucuk", "kalite_kotu", "tatmin_edici_degil", "ortalama_lezzet",
	},
	aspect.FoodVariety: {
		"cesit_cok", "secenek_zengin", "menu_genis", "bufe_zengin", "her_sey_var", "cocuk_menusu_var",
		"vejetaryen_var", "cesit_az", "secenek_yetersiz", "menu_dar", "menu_kisitli", "vejetaryen_yok",
		"diyet_secenek_yok", "cocuk_icin_yetersiz", "tekrar_eden_menu", "bufe_yetersiz",
	},
	aspect.Pool: {
		"havuz_temiz", "havuz_buyuk", "havuz_guzel", "havuz_sicak", "havuz_sakin", "havuz_var",
		"havuz_genis", "havuz_iyi", "havuz_keyifli", "cocuk_havuzu_var", "kapali_havuz_var",
		"havuz_kirli", "havuz_soguk", "havuz_kucuk", "havuz_kalabalik", "havuz_bakimsiz", "havuz_yok",
		"havuz_kapali", "havuz_kullanilabilirlik_sorunu", "havuz_tehlikeli",
	},
	aspect.SpaHammam: {
		"spa_temiz", "spa_iyi", "spa_guzel", "hamam_iyi", "sauna_iyi", "termal_iyi", "spa_rahatlatici",
		"masaj_iyi", "spa_genis", "spa_hizmet_iyi", "spa_var", "spa_kirli", "spa_kapali",
		"spa_kalabalik", "spa_sicaklik_sorun", "spa_kucuk", "spa_bakimsiz", "spa_yok", "spa_kokuyor",
		"ekipman_bakimsiz", "hizmet_zayif", "sauna_yok", "hamam_kirli", "spa_kullanilabilirlik_sorun",
	},
	aspect.Beach: {
		"plaj_temiz", "plaj_guzel", "plaj_yakin", "denize_giris_kolay", "deniz_temiz", "deniz_sakin",
		"kum_guzel", "plaj_genis", "plaj_sakin", "plaj_var", "plaj_konforlu", "sezlong_var",
		"plaj_kirli", "plaj_uzak", "denize_giris_zor", "deniz_dalgali", "deniz_kirli", "cakil_rahatsiz",
		"plaj_kalabalik", "plaj_yok", "plaj_bakimsiz", "plaj_kucuk", "plaj_tehlikeli", "sezlong_yok",
	},
	aspect.ChildFriendly: {
		"cocuk_havuzu_var", "mini_club_var", "cocuk_aktivite_var", "aile_icin_uygun", "cocuk_dostu",
		"cocuk_menusu_var", "oyun_alani_var", "bebek_yatagi_var", "cocuk_icin_uygun", "cocuk_havuzu_yok",
		"mini_club_yok", "cocuk_aktivite_yok", "cocuk_icin_tehlikeli", "cocuk_icin_yetersiz",
		"aile_icin_uygun_degil",
	},
	aspect.WiFi: {
		"wifi_var_iyi", "wifi_hizli", "wifi_ucretsiz", "wifi_her_yerde", "wifi_iyi", "internet_hizli",
		"wifi_yok", "wifi_yavas", "wifi_kopuyor", "wifi_cekmez", "wifi_sadece_lobi", "wifi_ucretli",
		"wifi_calismiyor", "wifi_yetersiz", "internet_yok",
	},
	aspect.Bathroom: {
		"banyo_temiz", "banyo_genis", "banyo_guzel", "banyo_yeni", "banyo_konforlu", "dus_iyi",
		"su_sicaklik_iyi", "su_basinci_iyi", "hijyen_urun_var", "havlu_temiz", "banyo_kirli",
		"banyo_kucuk", "banyo_eski", "banyo_bakimsiz", "klozet_sorun", "dus_ariza", "ariza_tesisat",
		"su_sicaklik_sorunu", "su_basinci_sorunu", "hijyen_urun_yok", "havlu_yok", "havlu_kirli",
		"tuvalet_kirli", "tuvalet_sorun", "su_damlamasi", "tikanma_sorunu", "rutubet_sorunu",
	},
	aspect.AirConditioning: {
		"klima_var", "klima_calisiyor", "klima_iyi", "isitma_iyi", "oda_sicaklik_ideal",
		"sogutma_yeterli", "isitma_yeterli", "klima_yok", "klima_calismiyor", "klima_bozuk",
		"klima_gurultulu", "klima_eski", "klima_ucretli", "isitma_calismiyor", "oda_cok_soguk",
		"oda_cok_sicak", "isinma_yetersiz", "sogutma_yetersiz", "sicaklik_ayarlama_sorun",
	},
	aspect.Reception: {
		"checkin_hizli", "iletisim_iyi", "yardimci_oldu", "cozum_odakli", "musteri_iliskisi_iyi",
		"karsilama_iyi", "checkout_hizli", "bilgilendirme_iyi", "sorun_cozdu", "checkin_yavas",
		"iletisim_kotu", "cozum_uretmedi", "yanlis_bilgi", "musteri_iliskisi_kotu", "ilgisiz",
		"sorun_cozmedi", "rezervasyon_sorunu", "bekleme_suresi_uzun",
	},
	aspect.Parking: {
		"otopark_var", "otopark_ucretsiz", "otopark_genis", "otopark_guvenli", "yer_bulmak_kolay",
		"otopark_buyuk", "vale_var", "otopark_yok", "otopark_dolu", "otopark_kucuk", "otopark_ucretli",
		"yer_bulmak_zor", "otopark_uzak", "otopark_dar", "otopark_guvensiz", "otopark_yetersiz",
		"otopark_sorunu", "park_sorunu",
	},
	aspect.Security: {
		"guvenli", "guvenlik_iyi", "guvenlik_gorevlisi_var", "kamera_var", "guvende_hissettim",
		"guvenlik_onlemleri_iyi", "guvensiz", "guvenlik_yok", "guvenlik_gorevlisi_yok", "kamera_yok",
		"gece_tehlikeli", "esya_kaybi", "guvenlik_sorun", "cevre_tehlikeli", "hirsizlik",
	},
	aspect.View: {
		"manzara_guzel", "manzara_harika", "deniz_manzara", "dag_manzara", "sehir_manzara",
		"dogal_manzara", "manzara_var", "golet_manzara", "nehir_manzara", "orman_manzara",
		"havuz_manzara", "manzara_yok", "manzara_kotu", "manzara_kapali", "ic_cephe", "otopark_manzara",
		"duvar_manzara",
	},
	aspect.RoomService: {
		"oda_servisi_var", "oda_servisi_hizli", "sicak_geldi", "kalite_iyi", "servis_iyi",
		"24_saat_servis", "oda_servisi_yok", "gecikme", "soguk_geldi", "kalite_kotu",
		"oda_servisi_pahali", "oda_servisi_yavas", "servis_kotu",
	},
	aspect.Fitness: {
		"fitness_var", "ekipman_yeterli", "ekipman_cok", "ekipman_yeni", "spor_salonu_temiz",
		"spor_salonu_genis", "fitness_iyi", "fitness_yok", "ekipman_az", "ekipman_eski",
		"ekipman_bakimsiz", "spor_salonu_kirli", "spor_salonu_kucuk", "acik_saat_sorun", "kalabalik",
	},
	aspect.MiniBar: {
		"mini_bar_var", "mini_bar_dolu", "cesit_cok", "fiyat_uygun", "ucretsiz_minibar", "mini_bar_yok",
		"mini_bar_bos", "mini_bar_calismiyor", "cesit_az", "pahali", "son_kullanma_gecmis",
		"mini_bar_eksik",
	},
	aspect.Balcony: {
		"balkon_var", "balkon_genis", "teras_var", "balkon_guzel", "balkon_manzarali", "kullanisli",
		"oturma_alani_var", "balkon_yok", "balkon_kucuk", "balkon_dar", "kullanissiz", "balkon_bakimsiz",
		"guvenlik_sorun", "manzara_yok",
	},
	aspect.Activities: {
		"aktivite_cok", "animasyon_var", "canli_muzik_var", "gece_eglence_var", "etkinlik_var", "dj_var",
		"gosteri_var", "eglence_programi_var", "etkinlik_kalitesi_iyi", "cocuk_aktivite_var",
		"aktivite_yok", "aktivite_az", "animasyon_yok", "canli_muzik_yok", "gece_eglence_yok",
		"etkinlik_kalitesi_kotu", "sikici", "cocuk_aktivite_yok", "eglence_yok",
	},
}
