package importer

import "github.com/example/tallum/pkg/models"

// SampleWords returns the built-in French to English starter set
func SampleWords() []models.Word {
	return []models.Word{
		{Word: "bonjour", Translation: "hello", ExampleSentence: "Bonjour, comment allez-vous?"},
		{Word: "merci", Translation: "thank you", ExampleSentence: "Merci beaucoup pour votre aide."},
		{Word: "au revoir", Translation: "goodbye", ExampleSentence: "Au revoir, à bientôt!"},
		{Word: "oui", Translation: "yes", ExampleSentence: "Oui, je comprends."},
		{Word: "non", Translation: "no", ExampleSentence: "Non, je ne sais pas."},
		{Word: "s'il vous plaît", Translation: "please", ExampleSentence: "S'il vous plaît, aidez-moi."},
		{Word: "excusez-moi", Translation: "excuse me", ExampleSentence: "Excusez-moi, où est la gare?"},
		{Word: "je ne comprends pas", Translation: "i don't understand", ExampleSentence: "Je ne comprends pas cette phrase."},
		{Word: "parlez-vous anglais", Translation: "do you speak english", ExampleSentence: "Parlez-vous anglais?"},
		{Word: "combien ça coûte", Translation: "how much does it cost", ExampleSentence: "Combien ça coûte ce livre?"},
	}
}
