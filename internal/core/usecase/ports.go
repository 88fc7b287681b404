package usecase

import "github.com/mohitk58/apnadera-frontend/internal/core/port/usecases_port"

var (
	_ usecases_port.ListPropertiesUseCasePort     = (*ListPropertiesUseCase)(nil)
	_ usecases_port.FeaturedPropertiesUseCasePort = (*FeaturedPropertiesUseCase)(nil)
	_ usecases_port.GetPropertyUseCasePort        = (*GetPropertyUseCase)(nil)
	_ usecases_port.SearchPropertiesUseCasePort   = (*SearchPropertiesUseCase)(nil)
	_ usecases_port.UserPropertiesUseCasePort     = (*UserPropertiesUseCase)(nil)
	_ usecases_port.UserFavoritesUseCasePort      = (*UserFavoritesUseCase)(nil)
	_ usecases_port.UserStatsUseCasePort          = (*UserStatsUseCase)(nil)
	_ usecases_port.CreatePropertyUseCasePort     = (*CreatePropertyUseCase)(nil)
	_ usecases_port.UpdatePropertyUseCasePort     = (*UpdatePropertyUseCase)(nil)
	_ usecases_port.DeletePropertyUseCasePort     = (*DeletePropertyUseCase)(nil)
	_ usecases_port.ToggleFavoriteUseCasePort     = (*ToggleFavoriteUseCase)(nil)
	_ usecases_port.SendInquiryUseCasePort        = (*SendInquiryUseCase)(nil)
	_ usecases_port.AuthContextPort               = (*AuthContext)(nil)
)
