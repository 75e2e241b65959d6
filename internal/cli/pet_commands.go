// filepath: internal/cli/pet_commands.go
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"petsapp/internal/models"
	"petsapp/internal/services"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// petFlags holds the editable pet fields shared by add and edit.
type petFlags struct {
	Name   string
	Breed  string
	Gender string
	Weight string
}

func (opt *petFlags) registerFlags(flags *pflag.FlagSet) {
	flags.StringVar(&opt.Name, "name", "", "Name of the pet.")
	flags.StringVar(&opt.Breed, "breed", "", "Breed of the pet.")
	flags.StringVar(&opt.Gender, "gender", "", "Gender: unknown, male or female (or 0, 1, 2).")
	flags.StringVar(&opt.Weight, "weight", "", "Weight in whole kilograms. Blank means 0.")
}

func parseGender(text string) (models.Gender, error) {
	gender, err := models.ParseGender(text)
	if err != nil {
		return models.GenderUnknown, fmt.Errorf("%w: %v", services.ErrValidation, err)
	}
	return gender, nil
}

func parseID(text string) (int64, error) {
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a valid pet id", services.ErrValidation, text)
	}
	return id, nil
}

// --- add ---

func NewAddCommand(globalOptions *GlobalOptions) *cobra.Command {
	addOptions := &petFlags{}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a pet to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd.OutOrStdout(), globalOptions, addOptions)
		},
	}
	addOptions.registerFlags(addCmd.Flags())

	return addCmd
}

func runAdd(out io.Writer, globalOptions *GlobalOptions, opt *petFlags) error {
	gender, err := parseGender(opt.Gender)
	if err != nil {
		return err
	}

	return globalOptions.withPetService(func(svc services.PetService) error {
		id, err := svc.Create(services.PetInput{
			Name:       opt.Name,
			Breed:      opt.Breed,
			Gender:     gender,
			WeightText: opt.Weight,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Pet saved with ID %d.\n", id)
		return nil
	})
}

// --- list ---

type listOptions struct {
	JSON bool
}

func NewListCommand(globalOptions *GlobalOptions) *cobra.Command {
	opt := &listOptions{}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every pet in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return globalOptions.withPetService(func(svc services.PetService) error {
				if opt.JSON {
					return listJSON(cmd.OutOrStdout(), svc)
				}
				return listTable(cmd.OutOrStdout(), svc)
			})
		},
	}
	listCmd.Flags().BoolVar(&opt.JSON, "json", false, "Print the catalog as a JSON array.")

	return listCmd
}

func listTable(out io.Writer, svc services.PetService) error {
	count, err := svc.Count()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "The pets table contains %d pets.\n\n", count)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		models.ColumnID, models.ColumnName, models.ColumnBreed, models.ColumnGender, models.ColumnWeight)
	for pet, err := range svc.List() {
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", pet.ID, pet.Name, pet.Breed, pet.Gender, pet.Weight)
	}
	return w.Flush()
}

func listJSON(out io.Writer, svc services.PetService) error {
	pets, err := svc.ListAll()
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(pets)
}

// --- show ---

func NewShowCommand(globalOptions *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a single pet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return globalOptions.withPetService(func(svc services.PetService) error {
				pet, err := svc.Get(id)
				if err != nil {
					return err
				}
				printPet(cmd.OutOrStdout(), pet)
				return nil
			})
		},
	}
}

func printPet(out io.Writer, pet *models.Pet) {
	w := tabwriter.NewWriter(out, 0, 4, 1, ' ', 0)
	fmt.Fprintf(w, "ID:\t%d\n", pet.ID)
	fmt.Fprintf(w, "Name:\t%s\n", pet.Name)
	fmt.Fprintf(w, "Breed:\t%s\n", pet.Breed)
	fmt.Fprintf(w, "Gender:\t%s\n", pet.Gender)
	fmt.Fprintf(w, "Weight:\t%d kg\n", pet.Weight)
	w.Flush()
}

// --- edit ---

func NewEditCommand(globalOptions *GlobalOptions) *cobra.Command {
	editOptions := &petFlags{}

	editCmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of an existing pet",
		Long:  "Only the flags given are changed; every other field keeps its stored value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			update, err := editOptions.toUpdate(cmd.Flags())
			if err != nil {
				return err
			}
			return globalOptions.withPetService(func(svc services.PetService) error {
				if err := svc.Update(id, update); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pet %d updated.\n", id)
				return nil
			})
		},
	}
	editOptions.registerFlags(editCmd.Flags())

	return editCmd
}

// toUpdate builds an update holding only the flags the user actually set.
func (opt *petFlags) toUpdate(flags *pflag.FlagSet) (services.PetUpdate, error) {
	var update services.PetUpdate
	if flags.Changed("name") {
		update.Name = &opt.Name
	}
	if flags.Changed("breed") {
		update.Breed = &opt.Breed
	}
	if flags.Changed("gender") {
		gender, err := parseGender(opt.Gender)
		if err != nil {
			return update, err
		}
		update.Gender = &gender
	}
	if flags.Changed("weight") {
		update.WeightText = &opt.Weight
	}

	if update.Name == nil && update.Breed == nil && update.Gender == nil && update.WeightText == nil {
		return update, errors.New("nothing to change: pass at least one of --name, --breed, --gender, --weight")
	}
	return update, nil
}

// --- delete ---

func NewDeleteCommand(globalOptions *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a pet from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return globalOptions.withPetService(func(svc services.PetService) error {
				affected, err := svc.Delete(id)
				if err != nil {
					return err
				}
				if affected == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No pet with ID %d, nothing deleted.\n", id)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pet %d deleted.\n", id)
				return nil
			})
		},
	}
}

// --- delete-all ---

type deleteAllOptions struct {
	Yes bool
}

func NewDeleteAllCommand(globalOptions *GlobalOptions) *cobra.Command {
	opt := &deleteAllOptions{}

	deleteAllCmd := &cobra.Command{
		Use:   "delete-all",
		Short: "Remove every pet from the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opt.Yes {
				return errors.New("refusing to delete all pets without --yes")
			}
			return globalOptions.withPetService(func(svc services.PetService) error {
				removed, err := svc.DeleteAll()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d pet(s) deleted.\n", removed)
				return nil
			})
		},
	}
	deleteAllCmd.Flags().BoolVar(&opt.Yes, "yes", false, "Confirm deletion of the whole catalog.")

	return deleteAllCmd
}
