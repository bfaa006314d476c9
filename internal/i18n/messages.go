package i18n

var catalog = map[string]map[string]string{
	LocaleID: {
		"error.bad_request":            "Permintaan tidak valid",
		"error.unauthorized":           "Anda harus login terlebih dahulu",
		"error.forbidden":              "Anda tidak memiliki akses",
		"error.not_found":              "Data tidak ditemukan",
		"error.too_many_requests":      "Terlalu banyak percobaan, silakan coba lagi nanti",
		"error.internal_error":         "Terjadi kesalahan pada server",
		"error.session_invalid":        "Sesi tidak valid, silakan muat ulang halaman",
		"error.login_invalid":          "Email atau password salah",
		"error.email_invalid":          "Format email tidak valid",
		"error.register_invalid":       "Nama, email, dan password wajib diisi",
		"error.register_failed":        "Registrasi gagal. Silakan coba lagi.",
		"error.cart_quantity_invalid":  "Jumlah item tidak valid",
		"error.cart_item_invalid":      "Item tidak valid",
		"error.menu_not_found":         "Menu tidak ditemukan",
		"error.menu_out_of_stock":      "Menu sedang habis",
		"error.menu_input_invalid":     "Nama menu, kategori, dan harga wajib diisi",
		"error.menu_fetch_failed":      "Gagal memuat data menu",
		"error.category_invalid":       "Nama kategori wajib diisi",
		"error.category_fetch_failed":  "Gagal memuat data kategori",
		"error.cart_empty":             "Pastikan Anda sudah memilih minimal satu item sebelum checkout",
		"error.checkout_in_flight":     "Pesanan Anda sedang diproses, mohon tunggu",
		"error.payment_method_invalid": "Metode pembayaran tidak valid",
		"error.ewallet_incomplete":     "Silakan pilih metode e-wallet dan masukkan nomor terlebih dahulu.",
		"error.phone_invalid":          "Nomor e-wallet tidak valid",
		"error.order_failed":           "Terjadi kesalahan saat memproses pesanan Anda.",
		"error.order_fetch_failed":     "Gagal memuat data pesanan",
		"error.order_status_invalid":   "Status pesanan tidak valid",
		"error.backend_unavailable":    "Layanan kantin sedang tidak dapat dihubungi",
		"error.user_fetch_failed":      "Gagal memuat data pengguna",
		"error.authz_invalid":          "Data hak akses tidak valid",
		"error.journal_fetch_failed":   "Gagal memuat riwayat checkout",
		"message.checkout_success":     "Terima kasih, pesanan Anda sedang diproses.",
		"message.register_success":     "Registrasi berhasil",
		"message.logout_success":       "Berhasil logout",
		"message.order_status_updated": "Status pesanan #%d menjadi %s",
	},
	LocaleEN: {
		"error.bad_request":            "Invalid request",
		"error.unauthorized":           "Please log in first",
		"error.forbidden":              "You do not have access",
		"error.not_found":              "Not found",
		"error.too_many_requests":      "Too many attempts, please try again later",
		"error.internal_error":         "Internal server error",
		"error.session_invalid":        "Invalid session, please reload the page",
		"error.login_invalid":          "Wrong email or password",
		"error.email_invalid":          "Invalid email format",
		"error.register_invalid":       "Name, email and password are required",
		"error.register_failed":        "Registration failed. Please try again.",
		"error.cart_quantity_invalid":  "Invalid item quantity",
		"error.cart_item_invalid":      "Invalid item",
		"error.menu_not_found":         "Menu item not found",
		"error.menu_out_of_stock":      "Menu item is sold out",
		"error.menu_input_invalid":     "Menu name, category and price are required",
		"error.menu_fetch_failed":      "Failed to load menu",
		"error.category_invalid":       "Category name is required",
		"error.category_fetch_failed":  "Failed to load categories",
		"error.cart_empty":             "Select at least one item before checkout",
		"error.checkout_in_flight":     "Your order is being processed, please wait",
		"error.payment_method_invalid": "Invalid payment method",
		"error.ewallet_incomplete":     "Choose an e-wallet and enter its number first.",
		"error.phone_invalid":          "Invalid e-wallet number",
		"error.order_failed":           "Something went wrong while processing your order.",
		"error.order_fetch_failed":     "Failed to load orders",
		"error.order_status_invalid":   "Invalid order status",
		"error.backend_unavailable":    "The canteen service is unreachable",
		"error.user_fetch_failed":      "Failed to load users",
		"error.authz_invalid":          "Invalid access control data",
		"error.journal_fetch_failed":   "Failed to load checkout history",
		"message.checkout_success":     "Thank you, your order is being processed.",
		"message.register_success":     "Registration successful",
		"message.logout_success":       "Logged out",
		"message.order_status_updated": "Order #%d is now %s",
	},
}
