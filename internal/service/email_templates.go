package service

import (
	"fmt"
	"strings"
)

func welcomeEmailTemplate(username, recipesURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your account is ready. Share the first recipe you love:
%s

Browse the gallery, save favorites and leave a rating on the dishes you cook.

Happy cooking,
The %s Team`, username, recipesURL, appName)

	return subject, body
}

func newReviewEmailTemplate(ownerName, reviewerName, recipeTitle, recipeURL string, rating int, appName string) (string, string) {
	stars := strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
	subject := fmt.Sprintf("%s rated your recipe %q", reviewerName, recipeTitle)
	body := fmt.Sprintf(`Hi %s,

%s left a review on %q: %s

See what they said:
%s

Best,
The %s Team`, ownerName, reviewerName, recipeTitle, stars, recipeURL, appName)

	return subject, body
}

func accountDeletedEmailTemplate(username, appName string) (string, string) {
	subject := fmt.Sprintf("Your %s account has been deleted", appName)
	body := fmt.Sprintf(`Hi %s,

Your account has been removed from %s by an administrator.

Your recipes, photos, favorites and reviews have been deleted with it.

If you believe this was a mistake, reply to this email.

Best,
The %s Team`, username, appName, appName)

	return subject, body
}
