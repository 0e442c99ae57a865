package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/skytrail/flightbook/config"
	"github.com/skytrail/flightbook/internal/domain"
	"github.com/skytrail/flightbook/internal/registry"
	"github.com/skytrail/flightbook/internal/session"
	"github.com/skytrail/flightbook/internal/storage"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logrus.SetLevel(level)
	}

	reg := registry.New()
	data := storage.NewData(cfg.Storage)
	if err := data.Load(reg); err != nil {
		logrus.Fatalf("load data: %v", err)
	}

	in := bufio.NewScanner(os.Stdin)
	if !login(in, session.NewAuthenticator(cfg.Auth)) {
		fmt.Println("Too many failed login attempts.")
		os.Exit(1)
	}

	runMenu(in, reg, data)
}

func login(in *bufio.Scanner, auth *session.Authenticator) bool {
	for attempt := 0; attempt < 3; attempt++ {
		username := prompt(in, "Username: ")
		password := prompt(in, "Password: ")
		if _, err := auth.Login(username, password); err == nil {
			return true
		}
		fmt.Println("Invalid credentials, try again.")
	}
	return false
}

func runMenu(in *bufio.Scanner, reg *registry.Registry, data *storage.Data) {
	fmt.Println("Flight booking system. Type 'help' for commands.")
	for {
		line := prompt(in, "> ")
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			printHelp()
		case "flights":
			listFlights(reg)
		case "customers":
			listCustomers(reg)
		case "addflight":
			addFlight(in, reg, data)
		case "addcustomer":
			addCustomer(in, reg, data)
		case "book":
			book(in, reg, data)
		case "cancel":
			withID(args, func(id int) {
				reg.CancelBooking(id)
				persist(reg, data)
			})
		case "delflight":
			withID(args, func(id int) {
				reg.DeleteFlight(id)
				persist(reg, data)
			})
		case "delcustomer":
			withID(args, func(id int) {
				reg.DeleteCustomer(id)
				persist(reg, data)
			})
		case "search":
			if len(args) < 2 {
				fmt.Println("usage: search <destination>")
				continue
			}
			for _, f := range reg.FilterFlightsByDestination(strings.Join(args[1:], " ")) {
				printFlight(f)
			}
		case "exit", "quit":
			return
		default:
			fmt.Printf("unknown command %q\n", args[0])
		}
	}
}

func printHelp() {
	fmt.Println(`commands:
  flights                list active flights with live prices
  customers              list active customers
  addflight              add a flight (prompts for details)
  addcustomer            add a customer (prompts for details)
  book                   create a booking (prompts for details)
  cancel <booking id>    cancel a booking
  delflight <id>         delete a flight
  delcustomer <id>       delete a customer
  search <destination>   find active flights by destination
  exit                   quit`)
}

func listFlights(reg *registry.Registry) {
	for _, f := range reg.ActiveFlights() {
		printFlight(f)
	}
}

func printFlight(f *domain.Flight) {
	fmt.Printf("#%d %s %s -> %s on %s, %d seats free, %.2f\n",
		f.ID, f.Number, f.Origin, f.Destination, f.DepartureDate, f.AvailableSeats(), f.Price(time.Now()))
}

func listCustomers(reg *registry.Registry) {
	for _, c := range reg.ActiveCustomers() {
		fmt.Printf("#%d %s (%s, %s)\n", c.ID, c.Name, c.Phone, c.Email)
	}
}

func addFlight(in *bufio.Scanner, reg *registry.Registry, data *storage.Data) {
	number := prompt(in, "Flight number: ")
	destination := prompt(in, "Destination: ")
	origin := prompt(in, "Origin: ")
	date := prompt(in, "Departure date (YYYY-MM-DD): ")
	capacity := promptInt(in, "Capacity: ")
	basePrice := promptFloat(in, "Base price: ")
	duration := prompt(in, "Duration: ")
	veg := promptFloat(in, "Veg meal cost: ")
	nonVeg := promptFloat(in, "Non-veg meal cost: ")

	f := reg.CreateFlight(number, destination, origin, date, capacity, basePrice, duration, veg, nonVeg)
	fmt.Printf("Flight #%d added.\n", f.ID)
	persist(reg, data)
}

func addCustomer(in *bufio.Scanner, reg *registry.Registry, data *storage.Data) {
	name := prompt(in, "Name: ")
	phone := prompt(in, "Phone: ")
	email := prompt(in, "Email: ")
	requests := prompt(in, "Special requests: ")

	c := reg.CreateCustomer(name, phone, email, requests)
	fmt.Printf("Customer #%d added.\n", c.ID)
	persist(reg, data)
}

func book(in *bufio.Scanner, reg *registry.Registry, data *storage.Data) {
	customerID := promptInt(in, "Customer ID: ")
	flightID := promptInt(in, "Flight ID: ")
	seatClass := prompt(in, "Seat class: ")
	meal := prompt(in, "Meal preference: ")
	bags := promptInt(in, "Number of bags: ")

	if _, err := reg.CreateBooking(customerID, flightID, seatClass, meal, bags); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Booking created for customer %d on flight %d.\n", customerID, flightID)
	persist(reg, data)
}

func persist(reg *registry.Registry, data *storage.Data) {
	if err := data.Store(reg); err != nil {
		fmt.Printf("Error saving data: %v\n", err)
	}
}

func withID(args []string, fn func(id int)) {
	if len(args) < 2 {
		fmt.Println("missing id argument")
		return
	}
	id, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Printf("bad id %q\n", args[1])
		return
	}
	fn(id)
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(in.Text())
}

func promptInt(in *bufio.Scanner, label string) int {
	for {
		v, err := strconv.Atoi(prompt(in, label))
		if err == nil {
			return v
		}
		fmt.Println("enter a whole number")
	}
}

func promptFloat(in *bufio.Scanner, label string) float64 {
	for {
		v, err := strconv.ParseFloat(prompt(in, label), 64)
		if err == nil {
			return v
		}
		fmt.Println("enter a number")
	}
}
