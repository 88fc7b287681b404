package usecases_port

// UseCases - набор сценариев, которые получают веб-сервер и CLI.
type UseCases struct {
	ListProperties     ListPropertiesUseCasePort
	FeaturedProperties FeaturedPropertiesUseCasePort
	GetProperty        GetPropertyUseCasePort
	SearchProperties   SearchPropertiesUseCasePort
	UserProperties     UserPropertiesUseCasePort
	UserFavorites      UserFavoritesUseCasePort
	UserStats          UserStatsUseCasePort
	CreateProperty     CreatePropertyUseCasePort
	UpdateProperty     UpdatePropertyUseCasePort
	DeleteProperty     DeletePropertyUseCasePort
	ToggleFavorite     ToggleFavoriteUseCasePort
	SendInquiry        SendInquiryUseCasePort
	Auth               AuthContextPort
}
